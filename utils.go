package main

import (
	"github.com/go-errors/errors"
	"github.com/rs/zerolog/log"
)

func LogError(err error) {
	var e *errors.Error
	if errors.As(err, &e) {
		log.Error().Err(err).Str("stack", e.ErrorStack()).Send()
	} else {
		log.Error().Err(err).Send()
	}
}
