package abi

import "fmt"

// Status is the return code of the modern constructor.
type Status int32

// Status codes of the modern native interface.
const (
	StatusOK Status = iota
	StatusError
	StatusInvalidArgs
	StatusInvalidType
	StatusInvalidDescriptor
	StatusIncorrectRef
	StatusPendingError
	StatusNotFound
	StatusAlreadyBinded
	StatusOutOfRef
	StatusOutOfMemory
	StatusOutOfRange
	StatusBufferTooSmall
	StatusInvalidVersion
	StatusAmbiguous
)

var statusNames = [...]string{
	StatusOK:                "ANI_OK",
	StatusError:             "ANI_ERROR",
	StatusInvalidArgs:       "ANI_INVALID_ARGS",
	StatusInvalidType:       "ANI_INVALID_TYPE",
	StatusInvalidDescriptor: "ANI_INVALID_DESCRIPTOR",
	StatusIncorrectRef:      "ANI_INCORRECT_REF",
	StatusPendingError:      "ANI_PENDING_ERROR",
	StatusNotFound:          "ANI_NOT_FOUND",
	StatusAlreadyBinded:     "ANI_ALREADY_BINDED",
	StatusOutOfRef:          "ANI_OUT_OF_REF",
	StatusOutOfMemory:       "ANI_OUT_OF_MEMORY",
	StatusOutOfRange:        "ANI_OUT_OF_RANGE",
	StatusBufferTooSmall:    "ANI_BUFFER_TO_SMALL",
	StatusInvalidVersion:    "ANI_INVALID_VERSION",
	StatusAmbiguous:         "ANI_AMBIGUOUS",
}

// String returns the C name of the status.
func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("ANI_STATUS(%d)", int32(s))
}
