package response

import (
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
	"cleanbook/shared/logger"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

// WithJSON wraps payload in the data envelope.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError writes a typed failure with its own code and message. Anything else is
// logged and reported as a bare 500 so driver and wrap text never reach the client.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		log.Error().Err(err).Msg("unhandled error reached the response writer")

		message := constant.ResponseErrorInternal
		write(writer, http.StatusInternalServerError, Error{Error: &message})

		return
	}

	message := fail.Message
	write(writer, fail.Code, Error{Error: &message})
}

// WithRequestLimitExceeded answers 429 and tells the client when the window resets.
func WithRequestLimitExceeded(writer http.ResponseWriter, retryAfterSeconds int) {
	if retryAfterSeconds > 0 {
		writer.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(retryAfterSeconds))
	}

	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
