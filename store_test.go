package flightdb

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, filename string, options ...Option) (*Store, FileSystem) {
	t.Helper()

	fs := afero.NewMemMapFs()
	options = append([]Option{WithFileSystem(fs)}, options...)
	return NewStore(filename, options...), fs
}

func Test_NewStore_defaultFilename(t *testing.T) {
	s := NewStore("")
	assert.Equal(t, "flight_data.txt", s.Filename())
}

func Test_Store_SaveFormat(t *testing.T) {
	s, fs := newTestStore(t, "flight_data.txt")

	idx := NewIndex()
	idx.Put(Flight{Number: 3, Destination: "Paris", AvailableSeats: 100})
	idx.Put(Flight{Number: 1, Destination: "Tokyo", AvailableSeats: 50})
	idx.Put(Flight{Number: 2, Destination: "Berlin", AvailableSeats: 30})
	idx.SoftDelete(2)

	require.NoError(t, s.Save(idx))

	data, err := afero.ReadFile(fs, "flight_data.txt")
	require.NoError(t, err)
	assert.Equal(t, "1 Tokyo 50 0\n2 - 0 1\n3 Paris 100 0\n", string(data))
}

func Test_Store_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t, "data/flights.txt")

	idx := NewIndex()
	idx.Put(Flight{Number: 10, Destination: "Oslo", AvailableSeats: 7})
	idx.Put(Flight{Number: -2, Destination: "Lima", AvailableSeats: 0})
	idx.Put(Flight{Number: 4, Destination: "Cairo", AvailableSeats: 250})
	idx.SoftDelete(4)
	require.NoError(t, s.Save(idx))

	flights, err := s.Load()
	require.NoError(t, err)

	reloaded := NewIndex()
	for _, f := range flights {
		reloaded.Put(*f)
	}

	want := make([]Flight, 0, idx.Len())
	for f := range idx.All() {
		want = append(want, *f)
	}
	got := make([]Flight, 0, reloaded.Len())
	for f := range reloaded.All() {
		got = append(got, *f)
	}
	assert.Equal(t, want, got)
}

func Test_Store_SaveOverwrites(t *testing.T) {
	s, fs := newTestStore(t, "flight_data.txt")
	require.NoError(t, afero.WriteFile(fs, "flight_data.txt", []byte("1 A 1 0\n2 B 2 0\n3 C 3 0\n"), 0644))

	idx := NewIndex()
	idx.Put(Flight{Number: 9, Destination: "Z", AvailableSeats: 9})
	require.NoError(t, s.Save(idx))

	data, err := afero.ReadFile(fs, "flight_data.txt")
	require.NoError(t, err)
	assert.Equal(t, "9 Z 9 0\n", string(data))
}

func Test_Store_SaveUnencodable(t *testing.T) {
	s, fs := newTestStore(t, "flight_data.txt")
	require.NoError(t, afero.WriteFile(fs, "flight_data.txt", []byte("1 A 1 0\n"), 0644))

	idx := NewIndex()
	idx.Put(Flight{Number: 1, Destination: "New York", AvailableSeats: 1})

	err := s.Save(idx)
	assert.ErrorIs(t, err, ErrMalformedRecord)

	// untouched
	data, err := afero.ReadFile(fs, "flight_data.txt")
	require.NoError(t, err)
	assert.Equal(t, "1 A 1 0\n", string(data))
}

func Test_Store_SaveIOFailure(t *testing.T) {
	s := NewStore("flight_data.txt", WithFileSystem(afero.NewReadOnlyFs(afero.NewMemMapFs())))

	idx := NewIndex()
	idx.Put(Flight{Number: 1, Destination: "Tokyo", AvailableSeats: 50})

	err := s.Save(idx)
	assert.ErrorIs(t, err, ErrIOFailure)
	// in-memory state is unaffected
	assert.Equal(t, 50, idx.Get(1).AvailableSeats)
}

func Test_Store_LoadNotFound(t *testing.T) {
	s, _ := newTestStore(t, "missing.txt")

	flights, err := s.Load()
	assert.ErrorIs(t, err, ErrDataFileNotFound)
	assert.Nil(t, flights)
}

func Test_Store_LoadMalformed(t *testing.T) {
	content := "1 Tokyo 50 0\ngarbage\n2 Berlin 30 0\n"

	tests := []struct {
		name   string
		policy MalformedPolicy
		want   []int
	}{
		{
			name:   "stop at malformed",
			policy: StopAtMalformed,
			want:   []int{1},
		},
		{
			name:   "skip malformed",
			policy: SkipMalformed,
			want:   []int{1, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fs := newTestStore(t, "flight_data.txt", WithMalformedPolicy(tt.policy))
			require.NoError(t, afero.WriteFile(fs, "flight_data.txt", []byte(content), 0644))

			flights, err := s.Load()
			require.NoError(t, err)

			got := make([]int, 0, len(flights))
			for _, f := range flights {
				got = append(got, f.Number)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Store_LoadBlankLines(t *testing.T) {
	s, fs := newTestStore(t, "flight_data.txt")
	require.NoError(t, afero.WriteFile(fs, "flight_data.txt", []byte("\n1 Tokyo 50 0\n   \n2 Berlin 30 1\n"), 0644))

	flights, err := s.Load()
	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, Flight{Number: 2, Destination: "Berlin", AvailableSeats: 30, Deleted: true}, *flights[1])
}

func Test_Store_LoadEmptyFile(t *testing.T) {
	s, fs := newTestStore(t, "flight_data.txt")
	require.NoError(t, afero.WriteFile(fs, "flight_data.txt", nil, 0644))

	flights, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, flights)
}

func Test_Store_LoadLongLine(t *testing.T) {
	content := "1 Tokyo 50 0\n" + strings.Repeat("x", 70000) + "\n2 Berlin 30 0\n"

	tests := []struct {
		name   string
		policy MalformedPolicy
		want   []int
	}{
		{
			name:   "stop at malformed",
			policy: StopAtMalformed,
			want:   []int{1},
		},
		{
			name:   "skip malformed",
			policy: SkipMalformed,
			want:   []int{1, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fs := newTestStore(t, "flight_data.txt", WithMalformedPolicy(tt.policy))
			require.NoError(t, afero.WriteFile(fs, "flight_data.txt", []byte(content), 0644))

			flights, err := s.Load()
			require.NoError(t, err)

			got := make([]int, 0, len(flights))
			for _, f := range flights {
				got = append(got, f.Number)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Store_LoadNoTrailingNewline(t *testing.T) {
	s, fs := newTestStore(t, "flight_data.txt")
	require.NoError(t, afero.WriteFile(fs, "flight_data.txt", []byte("1 Tokyo 50 0\n2 Berlin 30 0"), 0644))

	flights, err := s.Load()
	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, Flight{Number: 2, Destination: "Berlin", AvailableSeats: 30}, *flights[1])
}
