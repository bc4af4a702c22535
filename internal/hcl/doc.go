// Package hcl provides the concrete HCL implementation of the manifest
// loading interface defined in the `config` package. It is responsible for
// file parsing and HCL-to-model translation, including the order-preserving
// walk over the santa block.
package hcl
