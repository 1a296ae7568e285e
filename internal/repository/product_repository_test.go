package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestProductQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bson.M{}, productQuery(ProductFilter{}))
	assert.Equal(t, bson.M{
		"category": bson.M{"$in": []string{"men", "women"}},
		"brand":    bson.M{"$in": []string{"nike"}},
	}, productQuery(ProductFilter{Categories: []string{"men", "women"}, Brands: []string{"nike"}}))
}

func TestProductSort(t *testing.T) {
	t.Parallel()

	tests := map[string]bson.D{
		"":            {{Key: "price", Value: 1}},
		SortPriceAsc:  {{Key: "price", Value: 1}},
		SortPriceDesc: {{Key: "price", Value: -1}},
		SortNewest:    {{Key: "createdAt", Value: -1}},
		"unknown":     {{Key: "price", Value: 1}},
	}
	for sort, want := range tests {
		assert.Equal(t, want, productSort(sort), sort)
	}
}

func TestSearchQuery(t *testing.T) {
	t.Parallel()

	_, err := searchQuery("   ")
	require.ErrorIs(t, err, ErrEmptyKeyword)

	query, err := searchQuery(" t-shirt (xl) ")
	require.NoError(t, err)

	clauses, ok := query["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, clauses, 4)

	want := bson.Regex{Pattern: `t-shirt \(xl\)`, Options: "i"}
	for i, field := range []string{"title", "description", "category", "brand"} {
		assert.Equal(t, bson.M{field: want}, clauses[i])
	}
}

func TestAverageRatingPipeline(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID()
	pipeline := averageRatingPipeline(id)

	require.Len(t, pipeline, 2)
	assert.Equal(t, "$match", pipeline[0][0].Key)
	assert.Equal(t, bson.D{{Key: "productId", Value: id}}, pipeline[0][0].Value)
	assert.Equal(t, "$group", pipeline[1][0].Key)
}
