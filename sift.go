package qkd

import "github.com/quantumchat/qkd/bitmap"

// sift performs the public basis reconciliation step: both parties announce
// their basis choices and keep only the positions where those choices agree,
// in original index order. Only basis labels are compared here, never bit
// values. The two returned keys are index-aligned and always equal in
// length.
func sift(sendBits, sendBases, recvBits, recvBases bitmap.Dense) (sSifted, rSifted bitmap.Dense) {
	mask := bitmap.XNor(sendBases, recvBases)
	return bitmap.Select(sendBits, mask), bitmap.Select(recvBits, mask)
}
