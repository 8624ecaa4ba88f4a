// Package slug generates URL-safe slugs from arbitrary strings with Unicode normalization.
//
// Route parameters are passed through Make when URLs are built, and templates
// use it through the slugify function.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/pebble/pkg/slug"
//
//	s := slug.Make("Hello, World!")
//	// Output: "hello-world"
//
//	s = slug.Make("Café & Restaurant")
//	// Output: "cafe-restaurant"
//
// # Configuration Options
//
// MaxLength limits the slug length (rune-based):
//
//	slug.Make("Very long title", slug.MaxLength(9))
//	// Output: "very-long"
//
// Separator sets the string used between words:
//
//	slug.Make("Product Name", slug.Separator("_"))
//	// Output: "product_name"
//
// Lowercase controls case conversion:
//
//	slug.Make("Product Name", slug.Lowercase(false))
//	// Output: "Product-Name"
//
// StripChars removes specific characters before processing:
//
//	slug.Make("Remove (these) [chars]", slug.StripChars("()[]"))
//	// Output: "remove-these-chars"
//
// CustomReplace applies string replacements before slugification:
//
//	replacements := map[string]string{"&": "and", "@": "at"}
//	slug.Make("Fish & Chips @ Home", slug.CustomReplace(replacements))
//	// Output: "fish-and-chips-at-home"
//
// # Unicode Support
//
// Latin diacritics are folded to ASCII equivalents:
//
//	slug.Make("München straße")    // "munchen-strase"
//	slug.Make("naïve résumé")      // "naive-resume"
//	slug.Make("Zażółć gęślą jaźń") // "zazolc-gesla-jazn"
//
// Unsupported character sets (Cyrillic, CJK, etc.) are replaced with separators.
package slug
