// Command generate-data writes the data_list_<N>.csv fixtures consumed by
// gridsum. Generation is seeded, so a given seed always reproduces the same
// datasets. When a target is given, one pair summing to it is planted at
// random positions in every file.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func main() {
	var (
		dir    = flag.String("dir", "data", "Output directory")
		sizes  = flag.String("sizes", "10,50,100,500,1000,5000", "Comma-separated dataset sizes")
		seed   = flag.Int64("seed", 42, "RNG seed")
		target = flag.Int64("target", 0, "Plant one pair summing to this value (0 disables planting)")
		maxVal = flag.Int64("max", 0, "Upper bound for generated values (0 = 10x the dataset size)")
	)
	flag.Parse()

	sizeList, err := parseSizes(*sizes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -sizes: %v\n", err)
		os.Exit(4)
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating %s: %v\n", *dir, err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	for _, size := range sizeList {
		path := filepath.Join(*dir, fmt.Sprintf("data_list_%d.csv", size))
		if err := writeDataset(path, size, *target, *maxVal, rng); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s (%d values)\n", path, size)
	}
}

// parseSizes parses a comma-separated list of positive sizes.
func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("size must be positive, got %d", n)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// writeDataset writes one CSV with a Value header column. With a non-zero
// target and size >= 2, two entries summing to the target are planted at
// distinct random positions.
func writeDataset(path string, size int, target, maxVal int64, rng *rand.Rand) error {
	if maxVal <= 0 {
		maxVal = int64(size) * 10
	}

	values := make([]int64, size)
	for i := range values {
		values[i] = rng.Int63n(maxVal) + 1
	}

	if target != 0 && size >= 2 {
		a := target / 2
		b := target - a
		i := rng.Intn(size)
		j := rng.Intn(size)
		for j == i {
			j = rng.Intn(size)
		}
		values[i] = a
		values[j] = b
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Value"}); err != nil {
		return err
	}
	for _, v := range values {
		if err := w.Write([]string{strconv.FormatInt(v, 10)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
