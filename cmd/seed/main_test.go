package main

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Wireless Headphones": "wireless-headphones",
		"Casual T-Shirt":      "casual-t-shirt",
		"  Plant Pot Set  ":   "plant-pot-set",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) want %q got %q", in, want, got)
		}
	}
}

func TestProductSeedsReferenceKnownCategories(t *testing.T) {
	known := make(map[string]bool, len(categorySeeds))
	for _, seed := range categorySeeds {
		known[seed.slug] = true
	}
	slugs := make(map[string]bool, len(productSeeds))
	for _, seed := range productSeeds {
		if !known[seed.category] {
			t.Fatalf("product %s references unknown category %s", seed.name, seed.category)
		}
		slug := slugify(seed.name)
		if slugs[slug] {
			t.Fatalf("duplicate product slug %s", slug)
		}
		slugs[slug] = true
	}
}
