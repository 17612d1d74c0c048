// Package catalog produces unified plant records by reconciling the remote
// content store with the compiled-in fallback dataset.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-desert-guide/internal/models"

	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a slug exists in neither the remote store
// nor the local dataset.
var ErrNotFound = errors.New("plant not found")

// RemoteSource is the read surface of the content store client.
type RemoteSource interface {
	GetPlant(ctx context.Context, slug string) (models.RemotePlant, error)
	GetCatalog(ctx context.Context) ([]models.RemotePlant, error)
}

// ImageResolver resolves opaque image references to concrete URLs.
type ImageResolver interface {
	Resolve(key, preResolved string) (string, error)
}

// Provider merges remote and local plant data. A nil remote source puts the
// provider in local-only mode.
type Provider struct {
	remote   RemoteSource
	resolver ImageResolver
	local    []models.PlantRecord
}

// NewProvider creates a Provider over the given sources. local is used in
// declaration order for local-only catalog entries.
func NewProvider(remote RemoteSource, resolver ImageResolver, local []models.PlantRecord) *Provider {
	return &Provider{remote: remote, resolver: resolver, local: local}
}

// localBySlug finds the local record for slug.
func (p *Provider) localBySlug(slug string) (models.PlantRecord, bool) {
	for _, rec := range p.local {
		if rec.Slug == slug {
			return rec, true
		}
	}
	return models.PlantRecord{}, false
}

// PlantBySlug returns the merged record for slug. Remote failures of any
// kind fall back to the local record; they are never surfaced to the caller.
func (p *Provider) PlantBySlug(ctx context.Context, slug string) (models.PlantRecord, error) {
	local, hasLocal := p.localBySlug(slug)

	if p.remote == nil {
		if hasLocal {
			return local, nil
		}
		return models.PlantRecord{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}

	remote, err := p.remote.GetPlant(ctx, slug)
	if err != nil {
		log.WithError(err).Debugf("Remote lookup failed for %q, using local fallback", slug)
		if hasLocal {
			return local, nil
		}
		return models.PlantRecord{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}

	return p.merge(remote, local), nil
}

// AllPlants returns the full merged catalog: remote entries first in the
// store's order, then local-only entries in declaration order. The result
// never contains two entries with the same slug.
func (p *Provider) AllPlants(ctx context.Context) []models.PlantRecord {
	if p.remote == nil {
		return append([]models.PlantRecord(nil), p.local...)
	}

	remotes, err := p.remote.GetCatalog(ctx)
	if err != nil {
		log.WithError(err).Debug("Remote catalog fetch failed, using local dataset")
		return append([]models.PlantRecord(nil), p.local...)
	}

	seen := make(map[string]struct{}, len(remotes))
	merged := make([]models.PlantRecord, 0, len(remotes)+len(p.local))

	for _, remote := range remotes {
		if remote.Slug == "" {
			log.Warn("Dropping remote catalog entry without a slug")
			continue
		}
		if _, dup := seen[remote.Slug]; dup {
			log.Warnf("Dropping duplicate remote catalog entry for slug %q", remote.Slug)
			continue
		}
		seen[remote.Slug] = struct{}{}

		local, _ := p.localBySlug(remote.Slug)
		merged = append(merged, p.merge(remote, local))
	}

	for _, local := range p.local {
		if _, ok := seen[local.Slug]; !ok {
			seen[local.Slug] = struct{}{}
			merged = append(merged, local)
		}
	}

	return merged
}

// merge builds the unified record: a remote field wins when it is defined
// and non-empty, otherwise the local value stands. Category is the one
// deliberate exception; the content store has no category concept, so the
// local value always wins.
func (p *Provider) merge(remote models.RemotePlant, local models.PlantRecord) models.PlantRecord {
	out := local

	if out.Slug == "" {
		out.Slug = remote.Slug
	}
	if remote.Name != "" {
		out.Name = remote.Name
	}
	if remote.ScientificName != "" {
		out.ScientificName = remote.ScientificName
	}
	if remote.About != "" {
		out.Description = remote.About
	}
	if !out.Category.Valid() {
		// Remote-only entry with no curated category.
		out.Category = models.CategoryOther
	}
	if len(remote.QuickFacts) > 0 {
		out.QuickFacts = remote.QuickFacts
	}
	if !remote.QuickID.Empty() {
		out.QuickID = remote.QuickID
	}
	if !remote.SeasonalNotes.Empty() {
		out.SeasonalNotes = remote.SeasonalNotes
	}
	if !remote.Uses.Empty() {
		out.Uses = remote.Uses
	}
	if !remote.Ethics.Empty() {
		out.Ethics = remote.Ethics
	}
	if !remote.WildlifeValue.Empty() {
		out.WildlifeValue = remote.WildlifeValue
	}
	if !remote.Facts.Empty() {
		out.Facts = remote.Facts
	}

	if remote.HeroImage != nil || len(remote.Gallery) > 0 {
		p.mergeImages(&out, remote, local)
	}

	return out
}

// resolvedImage pairs a concrete URL with the asset key it came from, kept
// around for key-based caption matching.
type resolvedImage struct {
	key string
	url string
}

// mergeImages replaces the record's image fields with the remote image set.
// References that cannot be resolved to a URL are dropped rather than
// failing the record.
func (p *Provider) mergeImages(out *models.PlantRecord, remote models.RemotePlant, local models.PlantRecord) {
	refs := make([]models.RemoteImageRef, 0, 1+len(remote.Gallery))
	if remote.HeroImage != nil {
		refs = append(refs, *remote.HeroImage)
	}
	refs = append(refs, remote.Gallery...)

	var resolved []resolvedImage
	for _, ref := range refs {
		url, err := p.resolveRef(ref)
		if err != nil {
			log.WithError(err).Warnf("Dropping image reference for plant %q", out.Slug)
			continue
		}
		if url == "" {
			continue
		}
		// Consecutive duplicates collapse; the hero is often repeated as
		// the first gallery entry.
		if len(resolved) > 0 && resolved[len(resolved)-1].url == url {
			continue
		}
		resolved = append(resolved, resolvedImage{key: ref.Key, url: url})
	}

	if len(resolved) == 0 {
		return
	}

	name := out.Name
	if name == "" {
		name = out.Slug
	}

	details := make([]models.GalleryDetail, 0, len(resolved))
	urls := make([]string, 0, len(resolved))
	for i, img := range resolved {
		urls = append(urls, img.url)
		details = append(details, resolveCaption(img, i, name, remote.Details, local.GalleryDetails))
	}

	out.MainImage = urls[0]
	out.GalleryImages = urls[1:]
	out.GalleryDetails = details
}

func (p *Provider) resolveRef(ref models.RemoteImageRef) (string, error) {
	if p.resolver == nil {
		if ref.URL != "" {
			return ref.URL, nil
		}
		return "", fmt.Errorf("no image resolver configured for asset key %q", ref.Key)
	}
	return p.resolver.Resolve(ref.Key, ref.URL)
}

// resolveCaption picks the caption for one merged image. Priority: explicit
// asset-key match, then URL equality, then the local caption at the same
// position, then a synthesized placeholder.
func resolveCaption(img resolvedImage, index int, plantName string, remoteDetails, localDetails []models.GalleryDetail) models.GalleryDetail {
	if img.key != "" {
		for _, d := range remoteDetails {
			if d.ImageKey == img.key {
				d.URL = img.url
				return d
			}
		}
	}
	for _, d := range remoteDetails {
		if d.URL != "" && d.URL == img.url {
			return d
		}
	}
	if index < len(localDetails) {
		d := localDetails[index]
		d.URL = img.url
		return d
	}
	return models.GalleryDetail{
		URL: img.url,
		Alt: fmt.Sprintf("%s photo %d", plantName, index+1),
	}
}

// ImageSet builds the ordered lightbox image set for a record:
// [mainImage, ...galleryImages] with empty entries and consecutive
// duplicates filtered out, each entry carrying its resolved caption.
// Order is stable for a given record.
func ImageSet(rec models.PlantRecord) []models.GalleryImage {
	raw := make([]string, 0, 1+len(rec.GalleryImages))
	if rec.MainImage != "" {
		raw = append(raw, rec.MainImage)
	}
	raw = append(raw, rec.GalleryImages...)

	var set []models.GalleryImage
	for _, url := range raw {
		if url == "" {
			continue
		}
		if len(set) > 0 && set[len(set)-1].URL == url {
			continue
		}
		set = append(set, galleryImageFor(rec, url, len(set)))
	}
	return set
}

func galleryImageFor(rec models.PlantRecord, url string, index int) models.GalleryImage {
	for _, d := range rec.GalleryDetails {
		if d.URL != "" && d.URL == url {
			return models.GalleryImage{URL: url, Alt: d.Alt, Title: d.Title, Description: d.Description}
		}
	}
	if index < len(rec.GalleryDetails) {
		d := rec.GalleryDetails[index]
		if d.URL == "" {
			return models.GalleryImage{URL: url, Alt: d.Alt, Title: d.Title, Description: d.Description}
		}
	}
	name := rec.Name
	if name == "" {
		name = rec.Slug
	}
	return models.GalleryImage{URL: url, Alt: fmt.Sprintf("%s photo %d", name, index+1)}
}

// Filter applies the catalog page's client-side search semantics:
// case-insensitive substring match over common and scientific names, plus
// an exact category filter. An empty query or the category "all" (or "")
// passes everything.
func Filter(plants []models.PlantRecord, query, category string) []models.PlantRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.ToLower(strings.TrimSpace(category))

	var out []models.PlantRecord
	for _, rec := range plants {
		if query != "" &&
			!strings.Contains(strings.ToLower(rec.Name), query) &&
			!strings.Contains(strings.ToLower(rec.ScientificName), query) {
			continue
		}
		if category != "" && category != "all" && string(rec.Category) != category {
			continue
		}
		out = append(out, rec)
	}
	return out
}
