package dto

import "image"

type DiscoverOutput struct {
	Total    int
	Locators []string
}

type EnsureLoadedInput struct {
	Index int
}

type PageOutput struct {
	Index   int
	Locator string
	State   string
	Error   string
}

func (p PageOutput) Loaded() bool {
	return p.State == "loaded"
}

type PreloadInput struct {
	Count int
	// Progress is advisory and may be nil.
	Progress func(done, want int)
}

type ElementOutput struct {
	Index  int
	Image  image.Image
	Lines  []string
	Failed bool
	Reason string
}
