package models

import (
	"encoding/json"
)

// StringOrStringSlice is a custom type that can unmarshal from either
// a JSON string or a JSON array of strings. The content store returns
// rich-text fields in both shapes depending on how the entry was edited.
type StringOrStringSlice []string

// UnmarshalJSON accepts both shapes. An array decodes as-is; a bare string
// becomes a single-element slice. Any other JSON type is an error.
func (s *StringOrStringSlice) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*s = lines
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = StringOrStringSlice{single}
	return nil
}

// Empty reports whether the field carries no usable text.
func (s StringOrStringSlice) Empty() bool {
	for _, v := range s {
		if v != "" {
			return false
		}
	}
	return true
}

// Category classifies a plant for the catalog filter UI. Categories are
// curated in the local dataset only; the content store has no concept of
// them, which is why the merge always keeps the local value.
type Category string

const (
	CategoryCactus     Category = "cactus"
	CategoryShrub      Category = "shrub"
	CategoryTree       Category = "tree"
	CategoryWildflower Category = "wildflower"
	CategoryOther      Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCactus, CategoryShrub, CategoryTree, CategoryWildflower, CategoryOther:
		return true
	}
	return false
}

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryCactus, CategoryShrub, CategoryTree, CategoryWildflower, CategoryOther}
}

type (
	// Config holds the application's configuration settings.
	Config struct {
		CachePath           string         `toml:"CachePath" json:"CachePath"`
		BleveIndexPath      string         `toml:"BleveIndexPath" json:"BleveIndexPath"`
		LogLevel            string         `toml:"LogLevel" json:"LogLevel"`
		LogFormat           string         `toml:"LogFormat" json:"LogFormat"`
		Remote              RemoteConfig   `toml:"Remote" json:"Remote"`
		Server              ServerConfig   `toml:"Server" json:"Server"`
		Prefetch            PrefetchConfig `toml:"Prefetch" json:"Prefetch"`
		APIClientTimeoutSec int            `toml:"ApiClientTimeoutSec" json:"ApiClientTimeoutSec"`
		MaxRetries          int            `toml:"MaxRetries" json:"MaxRetries"`
		InitialRetryDelayMs int            `toml:"InitialRetryDelayMs" json:"InitialRetryDelayMs"`
		LogApiRequests      bool           `toml:"LogApiRequests" json:"LogApiRequests"`
	}

	// RemoteConfig holds connection settings for the headless content store.
	RemoteConfig struct {
		BaseURL    string `toml:"BaseUrl" json:"BaseUrl"`
		Token      string `toml:"Token" json:"Token"`
		CDNBaseURL string `toml:"CdnBaseUrl" json:"CdnBaseUrl"`
		Enabled    bool   `toml:"Enabled" json:"Enabled"`
	}

	// ServerConfig holds settings specific to the 'serve' command.
	ServerConfig struct {
		Listen string `toml:"Listen" json:"Listen"`
	}

	// PrefetchConfig holds settings specific to the 'prefetch' command.
	PrefetchConfig struct {
		Concurrency int `toml:"Concurrency" json:"Concurrency"`
	}

	// QuickFact is one label/value pair shown in the quick-facts box on a
	// plant detail page.
	QuickFact struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}

	// GalleryDetail is a captioned image entry. It is matched to a gallery
	// image by ImageKey first, then by URL equality, and only as a last
	// resort by position.
	GalleryDetail struct {
		ImageKey    string `json:"imageKey,omitempty"`
		URL         string `json:"url,omitempty"`
		Alt         string `json:"alt"`
		Title       string `json:"title,omitempty"`
		Description string `json:"description,omitempty"`
	}

	// PlantRecord represents one species entry as rendered by the UI. It is
	// built once by the catalog provider and never mutated afterwards.
	PlantRecord struct {
		Slug           string              `json:"slug"`
		Name           string              `json:"name"`
		ScientificName string              `json:"scientificName"`
		Description    string              `json:"description"`
		Category       Category            `json:"category"`
		MainImage      string              `json:"mainImage,omitempty"`
		GalleryImages  []string            `json:"galleryImages,omitempty"`
		GalleryDetails []GalleryDetail     `json:"galleryDetails,omitempty"`
		QuickFacts     []QuickFact         `json:"quickFacts,omitempty"`
		QuickID        StringOrStringSlice `json:"quickId,omitempty"`
		SeasonalNotes  StringOrStringSlice `json:"seasonalNotes,omitempty"`
		Uses           StringOrStringSlice `json:"uses,omitempty"`
		Ethics         StringOrStringSlice `json:"ethics,omitempty"`
		WildlifeValue  StringOrStringSlice `json:"wildlifeValue,omitempty"`
		Facts          StringOrStringSlice `json:"facts,omitempty"`
	}

	// GalleryImage is one resolved entry of a plant's lightbox image set:
	// a concrete URL plus its caption metadata.
	GalleryImage struct {
		URL         string `json:"url"`
		Alt         string `json:"alt"`
		Title       string `json:"title,omitempty"`
		Description string `json:"description,omitempty"`
	}

	// --- Content store wire structures ---

	// RemoteImageRef is an opaque image asset handle as returned by the
	// content store. Key encodes the asset identity and is resolved to a
	// CDN URL by the URL builder; URL is set when the store pre-resolved it.
	RemoteImageRef struct {
		Key string `json:"key"`
		URL string `json:"url,omitempty"`
	}

	// RemotePlant is a plant entry as returned by the content store.
	// Field coverage is sparse: anything absent or empty falls back to the
	// local record during the merge.
	RemotePlant struct {
		Slug           string              `json:"slug"`
		Name           string              `json:"name"`
		ScientificName string              `json:"scientificName"`
		About          string              `json:"about"`
		HeroImage      *RemoteImageRef     `json:"heroImage,omitempty"`
		Gallery        []RemoteImageRef    `json:"gallery,omitempty"`
		Details        []GalleryDetail     `json:"details,omitempty"`
		QuickFacts     []QuickFact         `json:"quickFacts,omitempty"`
		QuickID        StringOrStringSlice `json:"quickId,omitempty"`
		SeasonalNotes  StringOrStringSlice `json:"seasonalNotes,omitempty"`
		Uses           StringOrStringSlice `json:"uses,omitempty"`
		Ethics         StringOrStringSlice `json:"ethics,omitempty"`
		WildlifeValue  StringOrStringSlice `json:"wildlifeValue,omitempty"`
		Facts          StringOrStringSlice `json:"facts,omitempty"`
	}

	// CatalogResponse is the content store's "fetch all plants" payload.
	CatalogResponse struct {
		Items    []RemotePlant      `json:"items"`
		Metadata PaginationMetadata `json:"metadata"`
	}

	// PaginationMetadata mirrors the content store's paging envelope.
	PaginationMetadata struct {
		NextCursor string `json:"nextCursor,omitempty"`
		TotalItems int    `json:"totalItems"`
	}
)
