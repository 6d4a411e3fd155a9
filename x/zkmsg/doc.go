// Package zkmsg verifies cross-chain messages with zero-knowledge proofs.
//
// Messages are submitted with a deposit and a per-chain nonce, then moved to a
// verified or failed state once a proof is checked against the verification key
// and cached program registered for the program the proof attests to. Keys and
// programs are managed by an authorized account, typically governance.
//
// The module account must be granted the Burner permission when failed deposits
// are slashed.
package zkmsg
