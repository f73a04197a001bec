// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package samples models the sample projects and runs their prebuilt archives.
package samples
