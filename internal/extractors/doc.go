// Package extractors provides text extraction from raw document bytes.
// Each format lives in its own subpackage implementing driven.Extractor;
// this package holds the shared normalisation rules and the extension
// dispatch registry.
package extractors
