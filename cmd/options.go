// Copyright © 2025 The javals authors

package cmd

import "github.com/javakit/javals/compiler"

// Option configures an exported command factory (LSPCommand,
// CheckCommand, ConsoleCommand). Embedders use it to inject a real
// semantic compiler front end and the class catalogs produced by
// their indexer.
type Option func(*cmdConfig)

type cmdConfig struct {
	facade           compiler.Facade
	jdkClasses       []string
	classPathClasses []string
}

// WithFacade injects the semantic compiler front end. Without one the
// commands run with lexical-only behavior.
func WithFacade(f compiler.Facade) Option {
	return func(c *cmdConfig) { c.facade = f }
}

// WithClassCatalog injects the JDK and classpath class name catalogs.
func WithClassCatalog(jdk, classPath []string) Option {
	return func(c *cmdConfig) {
		c.jdkClasses = jdk
		c.classPathClasses = classPath
	}
}

// resolveFacade returns the injected facade, or the unsupported stub.
func (c *cmdConfig) resolveFacade() compiler.Facade {
	if c.facade != nil {
		return c.facade
	}
	return compiler.Unsupported()
}
