package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromURL(t *testing.T) {
	store := &S3ImageStore{bucket: "saifauto-cars"}

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "virtual hosted style",
			url:  "https://saifauto-cars.s3.eu-west-3.amazonaws.com/cars/12/front.jpg",
			want: "cars/12/front.jpg",
		},
		{
			name: "path style",
			url:  "https://s3.eu-west-3.amazonaws.com/saifauto-cars/cars/12/front.jpg",
			want: "cars/12/front.jpg",
		},
		{
			name: "key with encoded spaces",
			url:  "https://saifauto-cars.s3.eu-west-3.amazonaws.com/cars/dacia%20duster.jpg",
			want: "cars/dacia duster.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := store.keyFromURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestKeyFromURLRejectsEmptyKey(t *testing.T) {
	store := &S3ImageStore{bucket: "saifauto-cars"}

	_, err := store.keyFromURL("https://saifauto-cars.s3.eu-west-3.amazonaws.com/")
	assert.Error(t, err)
}
