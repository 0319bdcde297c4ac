package services

import (
	"testing"
	"time"

	"marketplace-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKind(t *testing.T) {
	for _, tag := range []string{"product", "service", "job", "matrimony", "user", "interest"} {
		spec, err := LookupKind(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, EntityKind(tag), spec.Kind)
	}

	_, err := LookupKind("vehicle")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid listing type", validationErr.Message)
}

func TestLookupListingKindRejectsNonListings(t *testing.T) {
	for _, tag := range []string{"user", "interest"} {
		_, err := LookupListingKind(tag)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, tag)
	}

	spec, err := LookupListingKind("matrimony")
	require.NoError(t, err)
	assert.Equal(t, KindMatrimony, spec.Kind)
}

func TestStatusMappingsPerKind(t *testing.T) {
	cases := map[EntityKind][2]string{
		KindProduct:   {"active", "rejected"},
		KindService:   {"active", "rejected"},
		KindJob:       {"active", "rejected"},
		KindMatrimony: {"active", "rejected"},
		KindUser:      {"active", "inactive"},
		KindInterest:  {"approved", "rejected"},
	}
	for kind, want := range cases {
		spec := kindRegistry[kind]
		assert.Equal(t, want[0], spec.ApprovedStatus, kind)
		assert.Equal(t, want[1], spec.RejectedStatus, kind)
	}
}

func TestDisplayNameFallback(t *testing.T) {
	job := &models.JobListing{JobTitle: "Backend Engineer"}
	assert.Equal(t, "Backend Engineer", job.DisplayName())

	product := &models.ProductListing{Title: "Vintage Camera"}
	assert.Equal(t, "Vintage Camera", product.DisplayName())

	related := &models.RelatedListing{JobTitle: "Site Supervisor"}
	assert.Equal(t, "Site Supervisor", related.DisplayName())
	related.Title = "Named Listing"
	assert.Equal(t, "Named Listing", related.DisplayName())
}

func TestDescribeListingTexts(t *testing.T) {
	listing := &models.ProductListing{Title: "Espresso Machine"}
	listing.CreatedAt = time.Now()

	title, message := kindRegistry[KindProduct].Describe(listing, "approved")
	assert.Equal(t, "Your product listing has been approved", title)
	assert.Equal(t, `Your listing "Espresso Machine" has been approved by a moderator.`, message)

	title, message = kindRegistry[KindJob].Describe(&models.JobListing{JobTitle: "Driver"}, "rejected")
	assert.Equal(t, "Your job listing has been rejected", title)
	assert.Equal(t, `Your listing "Driver" has been rejected by a moderator.`, message)
}
