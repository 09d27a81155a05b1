package bip39

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
)

// candidatePaths returns the fixed, ordered list of filesystem locations
// probed for an override English wordlist file: two installed
// system paths, a path relative to the running executable, and the
// development tree's data directory. go-bip39 already ships its own
// embedded English list (loaded at package init), so these candidates are
// only consulted to let an operator override it — e.g. to point at a
// vetted copy shipped alongside the binary — never as the sole source.
func candidatePaths() []string {
	paths := []string{
		"/usr/share/skms/wordlist_english.txt",
		"/etc/skms/wordlist_english.txt",
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "wordlist_english.txt"))
	}
	paths = append(paths, filepath.Join("internal", "bip39", "testdata", "wordlist_english.txt"))
	return paths
}

// LoadWordlistOverride probes candidatePaths in order and, if a file with
// exactly 2048 trimmed non-empty lines is found, installs it as the active
// BIP-39 wordlist. If none of the candidates yield a usable list, the
// process keeps go-bip39's embedded default — this is never a
// SYSTEM_ERROR on its own, since the embedded list is always present and
// already satisfies the 2048-word invariant.
func LoadWordlistOverride() error {
	for _, path := range candidatePaths() {
		words, err := readWordlistFile(path)
		if err != nil {
			continue
		}
		if len(words) != 2048 {
			continue
		}
		bip39.SetWordList(words)
		return nil
	}
	if len(bip39.GetWordList()) != 2048 {
		return coreerr.New(coreerr.SystemError, "no wordlist candidate yielded exactly 2048 words")
	}
	return nil
}

func readWordlistFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
