// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the FSInfo struct, which links a component back to the
// file it was declared in.
//
// Why store the file path?
//
// Analysis issues name a variable or an equation. When a model is merged from
// several files, the path is what lets a user find the declaration the issue
// is about. Components built in code have no FSInfo.
package model

// FSInfo stores file system metadata of a declaration.
type FSInfo struct {
	FilePath string
}

// NewFSInfo returns FSInfo for filePath.
func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
	}
}

// String returns the file path, or an empty string for a nil FSInfo.
func (f *FSInfo) String() string {
	if f == nil {
		return ""
	}
	return f.FilePath
}
