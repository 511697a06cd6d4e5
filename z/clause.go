// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package z

// Type C identifies a clause stored in a clause database.
type C uint32

// CNull is the reserved "no clause" id.
const CNull C = 0
