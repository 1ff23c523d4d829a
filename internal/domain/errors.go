package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownFund é um erro de configuração: o rótulo não corresponde a nenhum fundo.
var ErrUnknownFund = errors.New("fundo desconhecido")

// ErrNoHistory indica que a aba limpa não tem nenhuma linha com data válida.
var ErrNoHistory = errors.New("nenhuma linha com data válida na planilha")

// SourceUnavailableError indica falha ao obter uma aba: rede, tempo esgotado ou CSV inválido.
type SourceUnavailableError struct {
	Sheet string
	Err   error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("fonte de dados indisponível para a aba %q: %v", e.Sheet, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// MalformedRowError identifica a célula que não pôde ser convertida em número.
type MalformedRowError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("linha %d, coluna %q: valor %q inválido: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }
