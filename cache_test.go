package inkwell

import (
	"errors"
	"testing"
)

type cacheHandle struct {
	size int
	id   int
}

func newCountingCache() (*glyphCache[*cacheHandle], *int, *[]int) {
	created := 0
	var released []int
	c := newGlyphCache("test",
		func(size int) (*cacheHandle, error) {
			created++
			return &cacheHandle{size: size, id: created}, nil
		},
		func(size int, _ *cacheHandle) {
			released = append(released, size)
		})
	return c, &created, &released
}

func TestGlyphCacheSameSizeReturnsSameHandle(t *testing.T) {
	c, created, _ := newCountingCache()

	a, err := c.getOrCreate(12)
	if err != nil {
		t.Fatalf("getOrCreate: %v", err)
	}
	b, err := c.getOrCreate(12)
	if err != nil {
		t.Fatalf("getOrCreate: %v", err)
	}
	if a != b {
		t.Error("same size should return the same handle")
	}
	if *created != 1 {
		t.Errorf("created = %d, want 1", *created)
	}
}

func TestGlyphCacheDistinctSizes(t *testing.T) {
	c, created, _ := newCountingCache()

	a, _ := c.getOrCreate(12)
	b, _ := c.getOrCreate(18)
	if a == b {
		t.Error("different sizes should return different handles")
	}
	if *created != 2 || c.len() != 2 {
		t.Errorf("created = %d, len = %d, want 2, 2", *created, c.len())
	}
}

func TestGlyphCacheFailureRegistersNothing(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	c := newGlyphCache("test", func(int) (*cacheHandle, error) {
		calls++
		return nil, boom
	}, nil)

	_, err := c.getOrCreate(12)
	var re *ResourceError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want *ResourceError", err)
	}
	if re.Size != 12 || !errors.Is(err, boom) {
		t.Errorf("ResourceError = %+v, want size 12 wrapping boom", re)
	}
	if c.len() != 0 {
		t.Errorf("len = %d, want 0", c.len())
	}

	// A retry calls create again instead of returning a cached failure.
	_, _ = c.getOrCreate(12)
	if calls != 2 {
		t.Errorf("create calls = %d, want 2", calls)
	}
}

func TestGlyphCacheRejectsNonPositiveSize(t *testing.T) {
	c, created, _ := newCountingCache()
	for _, size := range []int{0, -4} {
		if _, err := c.getOrCreate(size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("getOrCreate(%d) err = %v, want ErrInvalidSize", size, err)
		}
	}
	if *created != 0 {
		t.Errorf("created = %d, want 0", *created)
	}
}

func TestGlyphCacheDisposeReleasesAll(t *testing.T) {
	c, created, released := newCountingCache()
	_, _ = c.getOrCreate(10)
	_, _ = c.getOrCreate(20)

	c.dispose()
	if len(*released) != 2 {
		t.Errorf("released %v, want 2 sizes", *released)
	}
	if c.len() != 0 {
		t.Errorf("len = %d, want 0", c.len())
	}

	_, _ = c.getOrCreate(10)
	if *created != 3 {
		t.Errorf("created = %d, want 3 (recreated after dispose)", *created)
	}
}
