// SPDX-License-Identifier: GPL-2.0-or-later

package vmt

import (
	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	tokOpen = iota
	tokClose
	tokString
	tokWord
	tokComment
)

var lexer *lexmachine.Lexer

func init() {
	lexer = lexmachine.NewLexer()
	lexer.Add([]byte(`\{`), token(tokOpen))
	lexer.Add([]byte(`\}`), token(tokClose))
	lexer.Add([]byte(`"[^"]*"`), token(tokString))
	// comments before words so that an equal length match is a comment
	lexer.Add([]byte(`//[^\n]*`), token(tokComment))
	lexer.Add([]byte("[^ \t\r\n\"{}]+"), token(tokWord))
	lexer.Add([]byte("( |\t|\r|\n)+"), skip)
	if err := lexer.Compile(); err != nil {
		panic(err)
	}
}

func token(t int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(t, string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

type tok struct {
	typ  int
	text string
	line int
}

func tokenize(script []byte) ([]tok, error) {
	s, err := lexer.Scanner(script)
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}
	var out []tok
	for t, err, eos := s.Next(); !eos; t, err, eos = s.Next() {
		if err != nil {
			return nil, errors.Wrap(ErrParse, err.Error())
		}
		lt := t.(*lexmachine.Token)
		if lt.Type == tokComment {
			continue
		}
		text := lt.Value.(string)
		if lt.Type == tokString {
			text = text[1 : len(text)-1]
		}
		out = append(out, tok{lt.Type, text, lt.StartLine})
	}
	return out, nil
}
