// Package hcl implements the config.Loader interface for HCL project
// files. It discovers .hcl files, decodes their `project` and `activity`
// blocks, evaluates scalar attribute expressions into numbers, and merges
// everything into the format-agnostic config model.
package hcl
