// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides capability tokens and the Claims passed into every
store operation.

# Tokens

Tokens use HMAC-SHA256 over "role:subject" and are verified without any
database lookup:

	token, err := auth.GenerateToken(studentID, models.RoleStudent, salt)
	claims, err := auth.ParseToken(token, salt)

Both halves are URL-safe base64 without padding, joined by a dot. Clients
send the token in the X-Auth-Token header.

# Roles

  - admin: defines elections, positions, candidates and students
  - officer: moves elections through their lifecycle and publishes results
  - staff: verifies students
  - student: casts ballots and reads published results

# Claims

Claims are explicit parameters rather than ambient session state:

	if err := claims.Require(models.RoleAdmin, models.RoleOfficer); err != nil {
		return err // wraps ErrForbidden
	}
*/
package auth
