// Package config loads a directory of layered configuration files into one
// nested tree.
//
// The loader reads the bootstrap file (app.yml, app.yaml or app.json) first,
// then walks the whole directory. Every .yml, .yaml, .json and .txt file is
// stored under its path: configs/dictionary/en.yml becomes
// tree["dictionary"]["en"]. Text files are stored as raw strings.
//
// # Environments
//
// A structured file may carry a default block and one block per environment:
//
//	default:
//	  host: localhost
//	staging:
//	  host: staging.example.com
//	production: staging   # alias: clone the staging block
//
// The effective value is the default block overridden, recursively, by the
// block of the active environment. A string value is an alias to a sibling
// block; a missing alias target fails the load. Files that have neither a
// default block nor a block for the active environment are stored as they
// are.
//
// # Placeholders
//
// After every file is loaded, string values are rendered once with
// package mustache against the whole tree, so any value can reference any
// other one:
//
//	default:
//	  title: "{{app.name}} admin"
//
// # Usage
//
//	cfg, err := config.Load(os.DirFS("configs"), config.WithEnv("staging"))
//	if err != nil {
//		return err
//	}
//	name := tree.Traverse("app.name", cfg)
package config
