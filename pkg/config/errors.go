// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

var (
	// ErrInvalidInterface is returned when the networking interface name is invalid
	ErrInvalidInterface = errors.New("invalid networking interface")
	// ErrInvalidOutput is returned when the output format is unknown
	ErrInvalidOutput = errors.New("invalid output format")
	// ErrInvalidLogLevel is returned when the log level is unknown
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat is returned when the log format is unknown
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidMetricsTextfile is returned when the metrics textfile path is invalid
	ErrInvalidMetricsTextfile = errors.New("invalid metrics textfile")
)
