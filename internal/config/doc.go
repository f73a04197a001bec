// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the samplerunner configuration.
//
// Configuration can come from a YAML or HCL file in the sample root, from any
// go-getter URL, or from built-in defaults. Fields left empty in a file take the
// default value. HCL files can refer to the process environment through the
// `env` object, e.g. `java = "${env.JAVA_HOME}/bin/java"`.
package config
