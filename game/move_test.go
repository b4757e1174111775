package game

import "testing"

var allMoves = []Move{Rock, Paper, Scissors}

// TestDominanceRelation verifica a relação cíclica: empate só consigo
// mesmo, antissimetria e totalidade sobre o conjunto de três jogadas.
func TestDominanceRelation(t *testing.T) {
	for _, a := range allMoves {
		for _, b := range allMoves {
			res := Compare(a, b)
			if a == b && res != 0 {
				t.Errorf("%s contra %s deveria empatar, Compare devolveu %d", a, b, res)
			}
			if a != b && res == 0 {
				t.Errorf("%s contra %s não deveria empatar", a, b)
			}
			// Antissimetria: a vence b se e somente se b não vence a.
			if a.Beats(b) == b.Beats(a) && a != b {
				t.Errorf("antissimetria violada entre %s e %s", a, b)
			}
			if res != -Compare(b, a) {
				t.Errorf("Compare(%s,%s) e Compare(%s,%s) não são simétricos", a, b, b, a)
			}
		}
	}

	// Cada jogada vence exatamente uma outra.
	for _, a := range allMoves {
		wins := 0
		for _, b := range allMoves {
			if a.Beats(b) {
				wins++
			}
		}
		if wins != 1 {
			t.Errorf("%s deveria vencer exatamente 1 jogada, vence %d", a, wins)
		}
	}

	t.Log("✓ Move: dominância cíclica correta")
}

// TestParseMove verifica atalho, palavra inteira, caixa e espaços para
// cada jogada, e a rejeição de todo o resto.
func TestParseMove(t *testing.T) {
	valid := map[string]Move{
		"r": Rock, "rock": Rock, "R": Rock, "ROCK": Rock, " Rock ": Rock,
		"p": Paper, "paper": Paper, "P": Paper, "PaPeR": Paper,
		"s": Scissors, "scissors": Scissors, "S": Scissors, "SCISSORS": Scissors,
	}
	for input, want := range valid {
		got, ok := ParseMove(input)
		if !ok || got != want {
			t.Errorf("ParseMove(%q) = (%v, %v); esperado (%v, true)", input, got, ok, want)
		}
	}

	invalid := []string{"", "   ", "x", "rocks", "pap", "pedra", "ro ck", "y", "1"}
	for _, input := range invalid {
		if _, ok := ParseMove(input); ok {
			t.Errorf("ParseMove(%q) deveria ser inválido", input)
		}
	}

	t.Log("✓ ParseMove: tokens válidos e inválidos tratados corretamente")
}
