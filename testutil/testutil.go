package testutil

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/klauspost/compress/zip"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Zipf returns a Zipfian-distributed value in [0, n).
// P(k) ∝ 1/k^s; word frequencies in natural text follow s≈1.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// Words returns n distinct lowercase words.
func (r *RNG) Words(n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, n)
	words := make([]string, 0, n)
	for len(words) < n {
		l := 2 + r.rand.Intn(8)
		var sb strings.Builder
		for range l {
			sb.WriteByte(byte('a' + r.rand.Intn(26)))
		}
		w := sb.String()
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

// Document returns the body of one document: lines of space separated
// words drawn from a Zipf distribution over words. Roughly one line in
// ten carries a double space, which produces an empty token.
func (r *RNG) Document(words []string, lines, tokensPerLine int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	for range lines {
		for j := range tokensPerLine {
			if j > 0 {
				sb.WriteByte(' ')
				if r.rand.Intn(10*tokensPerLine) == 0 {
					sb.WriteByte(' ')
				}
			}
			sb.WriteString(words[r.zipfLocked(len(words), 1.0)])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Corpus returns ham and spam documents laid out the way the dataset
// archives are: ham/NNNN.ham.txt and spam/NNNN.spam.txt.
func (r *RNG) Corpus(words []string, ham, spam int) []ZipEntry {
	entries := make([]ZipEntry, 0, ham+spam)
	for i := range ham {
		entries = append(entries, ZipEntry{
			Name: fmt.Sprintf("ham/%04d.ham.txt", i),
			Body: r.Document(words, 1+r.Intn(6), 1+r.Intn(12)),
		})
	}
	for i := range spam {
		entries = append(entries, ZipEntry{
			Name: fmt.Sprintf("spam/%04d.spam.txt", i),
			Body: r.Document(words, 1+r.Intn(6), 1+r.Intn(12)),
		})
	}
	return entries
}

// ZipEntry is one file of a zip fixture. Entries whose name ends in "/"
// are written as directories.
type ZipEntry struct {
	Name string
	Body string
	// Store disables deflate compression for the entry.
	Store bool
}

// BuildZip returns a zip archive containing entries in the given order.
func BuildZip(tb testing.TB, entries ...ZipEntry) []byte {
	tb.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		method := zip.Deflate
		if e.Store || strings.HasSuffix(e.Name, "/") {
			method = zip.Store
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: method})
		if err != nil {
			tb.Fatalf("zip create %s: %v", e.Name, err)
		}
		if strings.HasSuffix(e.Name, "/") {
			continue
		}
		if _, err := w.Write([]byte(e.Body)); err != nil {
			tb.Fatalf("zip write %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// CorruptEntry flips a byte in the stored data of the named entry so that
// reading it fails its CRC check. The entry must have been written with
// Store set.
func CorruptEntry(tb testing.TB, data []byte, name, body string) []byte {
	tb.Helper()

	out := bytes.Clone(data)
	header := []byte(name)
	i := bytes.Index(out, header)
	if i < 0 {
		tb.Fatalf("entry %s not found", name)
	}
	j := bytes.Index(out[i+len(header):], []byte(body))
	if j < 0 || len(body) == 0 {
		tb.Fatalf("body of %s not found", name)
	}
	pos := i + len(header) + j + len(body) - 1
	out[pos] ^= 0xff
	return out
}

// ExactCounts computes the count vector of lines against vocabulary with a
// linear index lookup per token. It is the reference the hash-indexed
// vectorizer is checked against.
func ExactCounts(vocabulary []string, lines []string) []int {
	counts := make([]int, len(vocabulary))
	for _, line := range lines {
		for _, tok := range splitSpace(line) {
			for i, w := range vocabulary {
				if w == tok {
					counts[i]++
					break
				}
			}
		}
	}
	return counts
}

// Lines splits a document body into lines the way a line reader does.
func Lines(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	if body == "" {
		return nil
	}
	lines := strings.Split(body, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func splitSpace(line string) []string {
	if !strings.Contains(line, " ") {
		return []string{line}
	}
	parts := strings.Split(line, " ")
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	return parts[:n]
}
