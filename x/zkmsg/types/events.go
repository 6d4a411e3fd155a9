package types

const (
	EventTypeMessageSubmitted          = ModuleName + ".message_submitted"
	EventTypeMessageVerified           = ModuleName + ".message_verified"
	EventTypeMessageVerificationFailed = ModuleName + ".message_verification_failed"
	EventTypeVerificationKeyAdded      = ModuleName + ".verification_key_added"
	EventTypeProgramCached             = ModuleName + ".program_cached"

	AttributeKeyHash             = "hash"
	AttributeKeySourceChain      = "source_chain"
	AttributeKeyDestinationChain = "destination_chain"
	AttributeKeySubmitter        = "submitter"
	AttributeKeyNonce            = "nonce"
	AttributeKeyError            = "error"
	AttributeKeyProgramID        = "program_id"
	AttributeKeyProofSystem      = "proof_system"
	AttributeKeyHeight           = "height"
)
