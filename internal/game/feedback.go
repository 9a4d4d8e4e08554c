// internal/game/feedback.go
//
// Letter-feedback scoring for the duel engine.
// Implements the standard two-pass algorithm so duplicated letters are
// never credited more times than they occur in the secret.

package game

// Score evaluates guess against secret and returns one verdict per letter.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count the remaining (non-correct) secret letters.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Absent.
//
// A letter in the secret is therefore never claimed by more guessed
// occurrences than it actually has (secret "erase", guess "speed": only one
// E survives pass 1, so only one of SPEED's Es can be Present).
//
// Inputs must both be WordLength lowercase a–z letters; the service layer
// validates before calling.
func Score(secret, guess string) []Verdict {
	res := make([]Verdict, WordLength)

	// Letter frequency for the non-correct secret positions (a–z).
	var remaining [26]int

	for i := 0; i < WordLength; i++ {
		if guess[i] == secret[i] {
			res[i] = VerdictCorrect
		} else {
			remaining[secret[i]-'a']++
		}
	}

	for i := 0; i < WordLength; i++ {
		if res[i] == VerdictCorrect {
			continue
		}
		if j := int(guess[i] - 'a'); j >= 0 && j < 26 && remaining[j] > 0 {
			res[i] = VerdictPresent
			remaining[j]--
		} else {
			res[i] = VerdictAbsent
		}
	}
	return res
}
