package game

import "strings"

// Move é uma das três jogadas do jokenpo. A relação de dominância é
// cíclica: cada jogada vence exatamente uma e perde para exatamente uma.
type Move int

const (
	Rock Move = iota
	Paper
	Scissors
)

// String devolve o token canônico da jogada, como aparece nas mensagens.
func (m Move) String() string {
	switch m {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	}
	return "?"
}

// beats mapeia cada jogada para a que ela vence.
var beats = map[Move]Move{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

// Beats informa se m vence other. Empate não é vitória.
func (m Move) Beats(other Move) bool {
	return beats[m] == other
}

// ParseMove converte a entrada do jogador numa jogada. Aceita o atalho de
// uma letra ou a palavra inteira, em qualquer caixa. Qualquer outra coisa
// é inválida e resulta em re-prompt, nunca em erro.
func ParseMove(s string) (Move, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "rock":
		return Rock, true
	case "p", "paper":
		return Paper, true
	case "s", "scissors":
		return Scissors, true
	}
	return 0, false
}

// Compare resolve uma rodada: 0 empate, >0 vitória de a, <0 vitória de b.
func Compare(a, b Move) int {
	if a == b {
		return 0
	}
	if a.Beats(b) {
		return 1
	}
	return -1
}
