// internal/words/words.go
//
// Word list management for the duel engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from environment-provided files or
//     fall back to embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply RandomAnswer for session creation and IsAllowed as the
//     pluggable dictionary predicate consumed by the service layer.
//
// Word Lists:
//   - "answers": canonical secrets (exactly 5 lowercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Environment variables:
//   WORDS_ANSWERS_FILE=/path/to/answers.txt
//   WORDS_ALLOWED_FILE=/path/to/allowed.txt
//
// If only the allowed file is set it serves as both lists. With neither set,
// the embedded defaults keep the server runnable out of the box.
// Initialization runs once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/samber/lo"
)

//go:embed default_answers.txt
var embeddedAnswers string

//go:embed default_allowed.txt
var embeddedAllowed string

var (
	initOnce   sync.Once
	answers    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{} // answers ∪ guesses
	initialErr error
)

// Init loads word lists exactly once.
// Returns an error if the answers list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var ansList, allowList []string

		answersPath := os.Getenv("WORDS_ANSWERS_FILE")
		allowedPath := os.Getenv("WORDS_ALLOWED_FILE")

		switch {
		case answersPath != "" && allowedPath != "":
			var err error
			if ansList, err = readWordFile(answersPath); err != nil {
				initialErr = err
				return
			}
			if allowList, err = readWordFile(allowedPath); err != nil {
				initialErr = err
				return
			}

		case allowedPath != "":
			var err error
			if allowList, err = readWordFile(allowedPath); err != nil {
				initialErr = err
				return
			}
			ansList = allowList

		default:
			ansList = normalizeLines(embeddedAnswers)
			allowList = normalizeLines(embeddedAllowed)
		}

		answers = ansList
		answersSet = toSet(ansList)

		// Every answer is always an allowed guess.
		allowedSet = toSet(ansList)
		for _, w := range allowList {
			allowedSet[w] = struct{}{}
		}

		if len(answers) == 0 {
			initialErr = errors.New("words: answers list is empty")
		}
	})
	return initialErr
}

// readWordFile loads one word per line, keeping valid 5-letter lowercase words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return normalize(lines), sc.Err()
}

// normalizeLines processes an embedded multiline string into valid words.
func normalizeLines(s string) []string {
	return normalize(strings.Split(s, "\n"))
}

// normalize lowercases, trims, and drops anything that is not a 5-letter
// a–z word or is a comment line.
func normalize(lines []string) []string {
	return lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		w := strings.TrimSpace(strings.ToLower(line))
		if strings.HasPrefix(w, "#") {
			return "", false
		}
		return w, len(w) == 5 && isAlpha(w)
	})
}

func toSet(list []string) map[string]struct{} {
	return lo.SliceToMap(list, func(w string) (string, struct{}) {
		return w, struct{}{}
	})
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomAnswer returns a cryptographically random answer word.
// Falls back to "crane" if lists were never loaded.
func RandomAnswer() string {
	if len(answers) == 0 {
		return "crane"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(answers))))
	return answers[nBig.Int64()]
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
// This is the dictionary predicate the service layer consumes.
func IsAllowed(w string) bool {
	_, ok := allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func IsAnswer(w string) bool {
	_, ok := answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func Stats() (answersCount, allowedCount int) {
	return len(answers), len(allowedSet)
}
