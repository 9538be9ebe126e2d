package syllable

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePinyinLoose(t *testing.T) {
	tests := []struct {
		in   string
		want Syllable
	}{
		{"zhong1", Syllable{"zh", "ong", 1}},
		{"hao3", Syllable{"h", "ao", 3}},
		{"yu2", Syllable{"y", "u", 2}},
		{"yue4", Syllable{"y", "ue", 4}},
		{"wo3", Syllable{"w", "o", 3}},
		{"lv4", Syllable{"l", "v", 4}},
		{"jiu3", Syllable{"j", "iu", 3}},
		{"er2", Syllable{"", "er", 2}},
		{"a1", Syllable{"", "a", 1}},
		{"de5", Syllable{"d", "e", 5}},
		{"n2", Syllable{"", "ng", 2}},
		{"m2", Syllable{"", "mg", 2}},
		{"hm5", Syllable{"h", "mg", 5}},
		{"hng5", Syllable{"h", "ng", 5}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePinyin(tt.in, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePinyinStrict(t *testing.T) {
	tests := []struct {
		in   string
		want Syllable
	}{
		{"you3", Syllable{"", "iou", 3}},
		{"yu2", Syllable{"", "v", 2}},
		{"yuan2", Syllable{"", "van", 2}},
		{"wei4", Syllable{"", "uei", 4}},
		{"jiu3", Syllable{"j", "iou", 3}},
		{"gui4", Syllable{"g", "uei", 4}},
		{"lun2", Syllable{"l", "uen", 2}},
		{"jun1", Syllable{"j", "vn", 1}},
		{"xue2", Syllable{"x", "ve", 2}},
		{"qu4", Syllable{"q", "v", 4}},
		{"zhong1", Syllable{"zh", "ong", 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePinyin(tt.in, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePinyinMalformed(t *testing.T) {
	for _, in := range []string{"", "hao", "3", "xyz1", "hao9", "zhq2"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePinyin(in, false)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedSyllable))

			var se *Error
			assert.True(t, errors.As(err, &se))
		})
	}
}

func TestParseJyutping(t *testing.T) {
	tests := []struct {
		in   string
		want Syllable
	}{
		{"nei5", Syllable{"n", "ei", 5}},
		{"hou2", Syllable{"h", "ou", 2}},
		{"gwong2", Syllable{"gw", "ong", 2}},
		{"zoeng1", Syllable{"z", "oeng", 1}},
		{"seoi3", Syllable{"s", "eoi", 3}},
		{"jyut6", Syllable{"j", "yut", 6}},
		{"ngo5", Syllable{"ng", "o", 5}},
		{"aa3", Syllable{"", "aa", 3}},
		{"m4", Syllable{"", "m", 4}},
		{"ng5", Syllable{"", "ng", 5}},
		{"hm6", Syllable{"h", "m", 6}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseJyutping(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJyutpingMalformed(t *testing.T) {
	for _, in := range []string{"nei7", "nei", "qxa1", ""} {
		_, err := ParseJyutping(in)
		assert.ErrorIs(t, err, ErrMalformedSyllable, in)
	}
}

func TestSyllablePhones(t *testing.T) {
	assert.Equal(t, []string{"zh", "ong", "1"}, Syllable{"zh", "ong", 1}.Phones())
}
