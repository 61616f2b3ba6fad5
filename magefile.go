//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "vocabbuilder"

// Default target to run when none is specified
var Default = Build

// Build builds the vocabbuilder binary
func Build() error {
	return sh.RunV("go", "build", "-o", binary, "./cmd/vocabbuilder")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install tests and installs vocabbuilder into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/vocabbuilder")
}

// Run builds and starts the interactive shell
func Run() error {
	mg.Deps(Build)
	return sh.RunV("./" + binary)
}

// Clean removes build artifacts
func Clean() error {
	if _, err := os.Stat(binary); os.IsNotExist(err) {
		return nil
	}
	return sh.Rm(binary)
}
