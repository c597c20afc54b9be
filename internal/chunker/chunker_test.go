package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		c, err := New(500, 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Size() != 500 || c.Overlap() != 50 {
			t.Errorf("expected size 500 overlap 50, got %d/%d", c.Size(), c.Overlap())
		}
	})

	t.Run("overlap equal to size", func(t *testing.T) {
		_, err := New(100, 100)
		if err == nil {
			t.Fatal("expected configuration error")
		}
		var cfgErr *domain.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected ConfigurationError, got %T", err)
		}
	})

	t.Run("overlap larger than size", func(t *testing.T) {
		if _, err := New(100, 150); err == nil {
			t.Fatal("expected configuration error")
		}
	})

	t.Run("non-positive size", func(t *testing.T) {
		if _, err := New(0, 0); err == nil {
			t.Fatal("expected configuration error")
		}
	})

	t.Run("negative overlap", func(t *testing.T) {
		if _, err := New(100, -1); err == nil {
			t.Fatal("expected configuration error")
		}
	})
}

func TestChunker_Chunk_Empty(t *testing.T) {
	c, _ := New(100, 20)
	chunks := c.Chunk("/docs/a.pdf", "abc", "")
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty text, got %d", len(chunks))
	}
}

func TestChunker_Chunk_ShortText(t *testing.T) {
	c, _ := New(100, 20)
	chunks := c.Chunk("/docs/a.pdf", "abc", "a short piece of text")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "a short piece of text" {
		t.Errorf("chunk content should match input text")
	}
	if chunks[0].Sequence != 0 {
		t.Errorf("expected sequence 0, got %d", chunks[0].Sequence)
	}
	if chunks[0].Start != 0 || chunks[0].End != len("a short piece of text") {
		t.Errorf("unexpected span %d-%d", chunks[0].Start, chunks[0].End)
	}
}

func TestChunker_Chunk_Deterministic(t *testing.T) {
	c, _ := New(500, 50)
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 40)

	first := c.Chunk("/docs/a.pdf", "abc", text)
	second := c.Chunk("/docs/a.pdf", "abc", text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunker_Chunk_SpansAndOverlap(t *testing.T) {
	c, _ := New(10, 3)
	text := "0123456789ABCDEFGHIJ" // 20 bytes, step 7

	chunks := c.Chunk("/docs/a.pdf", "abc", text)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	// Boundaries: 0-10, 7-17, 14-20
	wantSpans := [][2]int{{0, 10}, {7, 17}, {14, 20}}
	for i, want := range wantSpans {
		if chunks[i].Start != want[0] || chunks[i].End != want[1] {
			t.Errorf("chunk %d span %d-%d, want %d-%d",
				i, chunks[i].Start, chunks[i].End, want[0], want[1])
		}
		if chunks[i].Sequence != i {
			t.Errorf("chunk %d has sequence %d", i, chunks[i].Sequence)
		}
		if chunks[i].Content != text[want[0]:want[1]] {
			t.Errorf("chunk %d content does not match its span", i)
		}
	}

	// Adjacent chunks overlap in characters
	if !strings.HasPrefix(chunks[1].Content, chunks[0].Content[7:]) {
		t.Error("expected chunk 1 to start with the overlap of chunk 0")
	}
}

func TestChunker_Chunk_ThreeChunksWithOverlap(t *testing.T) {
	// 1200 characters with maxSize=500, overlap=50 yields 3 chunks
	c, _ := New(500, 50)
	text := strings.Repeat("x", 1200)

	chunks := c.Chunk("/docs/report.pdf", "abc123", text)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.Sequence != i {
			t.Errorf("expected sequence %d, got %d", i, chunk.Sequence)
		}
		if chunk.Fingerprint != "abc123" {
			t.Errorf("chunk %d missing parent fingerprint", i)
		}
	}
}

func TestChunker_Chunk_ExactMultiple(t *testing.T) {
	c, _ := New(50, 0)
	chunks := c.Chunk("/docs/a.txt", "abc", strings.Repeat("a", 100))
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace",
			input: "hello\n\n\t world",
			want:  "hello world",
		},
		{
			name:  "strips urls",
			input: "see https://example.com/page for details",
			want:  "see for details",
		},
		{
			name:  "strips image references",
			input: "before ![diagram](img/fig1.png) after",
			want:  "before after",
		},
		{
			name:  "trims",
			input: "  padded  ",
			want:  "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
