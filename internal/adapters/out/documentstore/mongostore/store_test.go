package mongostore

import (
	"testing"

	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDocumentID(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name string
		raw  bson.M
		want string
	}{
		{"object id", bson.M{"_id": oid}, oid.Hex()},
		{"string id", bson.M{"_id": "legacy-1"}, "legacy-1"},
		{"numeric id", bson.M{"_id": int32(42)}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, documentID(tt.raw))
		})
	}
}

func TestDocumentID_DistinctForStringIDs(t *testing.T) {
	// Given
	a := bson.M{"_id": "legacy-1", "status": "pending"}
	b := bson.M{"_id": "legacy-2", "status": "pending"}

	// When
	idA, idB := documentID(a), documentID(b)

	// Then
	assert.NotEqual(t, idA, idB)
	assert.NotEqual(t, primitive.NilObjectID.Hex(), idA)
}

func TestIDFilter(t *testing.T) {
	t.Run("StringID", func(t *testing.T) {
		assert.Equal(t, bson.M{"_id": "legacy-1"}, idFilter("legacy-1"))
	})

	t.Run("HexMatchesObjectIDAndString", func(t *testing.T) {
		oid := primitive.NewObjectID()

		filter := idFilter(oid.Hex())

		in, ok := filter["_id"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, bson.A{oid, oid.Hex()}, in["$in"])
	})
}

func TestFindPipeline(t *testing.T) {
	t.Run("FiltersOnly", func(t *testing.T) {
		// When
		pipeline := findPipeline(ports.Query{Filters: []ports.Filter{{Field: "role", Value: "driver"}}})

		// Then
		require.Len(t, pipeline, 1)
		assert.Equal(t, bson.D{{Key: "$match", Value: bson.D{{Key: "role", Value: "driver"}}}}, pipeline[0])
	})

	t.Run("MissingSortsLastInBothDirections", func(t *testing.T) {
		for _, descending := range []bool{false, true} {
			// When
			pipeline := findPipeline(ports.Query{OrderBy: "name", Descending: descending})

			// Then
			require.Len(t, pipeline, 4)
			sort, ok := pipeline[2][0].Value.(bson.D)
			require.True(t, ok)
			require.Len(t, sort, 3)
			assert.Equal(t, bson.E{Key: sortMissing, Value: 1}, sort[0])
			assert.Equal(t, "name", sort[1].Key)
			assert.Equal(t, bson.E{Key: "$project", Value: bson.M{sortMissing: 0}}, pipeline[3][0])
		}
	})
}
