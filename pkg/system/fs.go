// Package system holds the live implementations of the seams the rest of
// gaiad-auto is written against: process execution and the filesystem.
package system

import "github.com/spf13/afero"

// AppFs is the filesystem used for reading configuration. Tests swap it for
// an afero.MemMapFs.
var AppFs afero.Fs = afero.NewOsFs()
