// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package hal

import (
	"crypto/sha256"

	"github.com/denisbrodbeck/machineid"
)

// fallbackBoardID is used when no machine identity is available, e.g. in
// stripped-down containers.
var fallbackBoardID = BoardID{0xe6, 0x60, 0x58, 0x38, 0x83, 0x35, 0x22, 0x2c}

// ReadBoardID returns the unique board identifier. On a development host
// the simulated board has no OTP flash, so the identifier is derived from
// the host machine id, keyed to this application so the raw machine id is
// never exposed.
func ReadBoardID() BoardID {
	id, err := machineid.ProtectedID("pico-console")
	if err != nil {
		return fallbackBoardID
	}
	sum := sha256.Sum256([]byte(id))
	var board BoardID
	copy(board[:], sum[:BoardIDSize])
	return board
}
