//go:build mage

// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the goquell binary.
func (Build) Binary() error {
	_, err := executeCmd("go", withArgs("build", "-o", "goquell", "."), withEnv("CGO_ENABLED=0"), withStream())
	return err
}

// Runs go vet over all packages.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Tidies go.mod.
func (Build) Tidy() error {
	_, err := executeCmd("go", withArgs("mod", "tidy"))
	return err
}

type Test mg.Namespace

// Runs the unit tests.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the unit tests with the race detector.
func (Test) Race() error {
	mg.Deps(Build.Vet)
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}
