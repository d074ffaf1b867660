package main

import (
	"github.com/BooleanCat/go-functional/v2/it/op"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
)

var _ pflag.Value = op.Ref(Locale(""))

// Locale is a BCP 47 language tag such as "de-DE". The empty Locale is American English.
type Locale string

func (l *Locale) UnmarshalText(text []byte) error {
	if _, err := language.Parse(string(text)); err != nil {
		return err
	}
	*l = Locale(text)
	return nil
}

func (l *Locale) Set(s string) error {
	return l.UnmarshalText([]byte(s))
}

func (l *Locale) String() string {
	return string(*l)
}

func (l *Locale) Type() string {
	return "locale"
}

func (l Locale) Tag() language.Tag {
	if l == "" {
		return language.AmericanEnglish
	}
	return language.Make(string(l))
}
