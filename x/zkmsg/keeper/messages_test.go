package keeper_test

import (
	"bytes"
	"errors"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

func (suite *KeeperTestSuite) TestSubmit() {
	var sub types.Submission

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			name:     "success",
			malleate: func() {},
			expErr:   nil,
		},
		{
			name: "success: payload of exactly the maximum size",
			malleate: func() {
				sub.Payload = bytes.Repeat([]byte{0x01}, int(suite.params.MaxPayloadSize))
			},
			expErr: nil,
		},
		{
			name: "success: empty payload",
			malleate: func() {
				sub.Payload = nil
			},
			expErr: nil,
		},
		{
			name: "payload one byte over the maximum",
			malleate: func() {
				sub.Payload = bytes.Repeat([]byte{0x01}, int(suite.params.MaxPayloadSize)+1)
			},
			expErr: types.ErrPayloadTooLarge,
		},
		{
			name: "unknown source chain",
			malleate: func() {
				sub.SourceChain = types.ChainUnknown
			},
			expErr: types.ErrInvalidChainId,
		},
		{
			name: "unknown destination chain",
			malleate: func() {
				sub.DestinationChain = types.ChainID(7)
			},
			expErr: types.ErrInvalidChainId,
		},
		{
			name: "empty submitter",
			malleate: func() {
				sub.Submitter = nil
			},
			expErr: sdkerrors.ErrInvalidAddress,
		},
		{
			name: "nonce ahead of tracked value",
			malleate: func() {
				sub.Nonce = 1
			},
			expErr: types.ErrNonceMismatch,
		},
		{
			name: "malformed proof envelope",
			malleate: func() {
				sub.Proof = []byte{0x01, 0x02}
			},
			expErr: types.ErrInvalidProof,
		},
		{
			name: "submitter cannot cover the deposit",
			malleate: func() {
				suite.bank.balances[submitter.String()] = sdk.NewCoins()
			},
			expErr: types.ErrInsufficientDeposit,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			sub = suite.submission(0)

			tc.malleate()

			msg, err := suite.keeper.Submit(suite.ctx, sub)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)

				_, err := suite.keeper.GetMessage(suite.ctx, sub.Hash())
				suite.Require().ErrorIs(err, types.ErrMessageNotFound)

				nonce, err := suite.keeper.GetNonce(suite.ctx, sub.SourceChain, submitter)
				suite.Require().NoError(err)
				suite.Require().Zero(nonce)
				suite.Require().Zero(suite.countEvents(types.EventTypeMessageSubmitted))
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(types.StatusSubmitted, msg.Status)
			suite.Require().Equal(submitter.String(), msg.Submitter)
			suite.Require().Equal(uint64(1), msg.SubmittedHeight)
			suite.Require().Equal(suite.params.MessageDeposit.String(), msg.Deposit)

			stored, err := suite.keeper.GetMessage(suite.ctx, sub.Hash())
			suite.Require().NoError(err)
			suite.Require().Equal(msg, stored)

			nonce, err := suite.keeper.GetNonce(suite.ctx, sub.SourceChain, submitter)
			suite.Require().NoError(err)
			suite.Require().Equal(uint64(1), nonce)

			suite.Require().Equal(sdk.NewCoins(suite.params.MessageDeposit), suite.bank.module)
			suite.Require().Equal(1, suite.countEvents(types.EventTypeMessageSubmitted))
		})
	}
}

func (suite *KeeperTestSuite) TestSubmitNonceSequence() {
	_, err := suite.keeper.Submit(suite.ctx, suite.submission(0))
	suite.Require().NoError(err)

	nonce, err := suite.keeper.GetNonce(suite.ctx, types.ChainEthereum, submitter)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), nonce)

	// replaying nonce 0 with a different payload is rejected by the nonce guard
	replay := suite.submission(0)
	replay.Payload = []byte("another payload")
	_, err = suite.keeper.Submit(suite.ctx, replay)
	suite.Require().ErrorIs(err, types.ErrNonceMismatch)

	_, err = suite.keeper.Submit(suite.ctx, suite.submission(2))
	suite.Require().ErrorIs(err, types.ErrNonceMismatch)

	_, err = suite.keeper.Submit(suite.ctx, suite.submission(1))
	suite.Require().NoError(err)

	// nonces are tracked per source chain
	other := suite.submission(0)
	other.SourceChain = types.ChainSolana
	_, err = suite.keeper.Submit(suite.ctx, other)
	suite.Require().NoError(err)

	nonce, err = suite.keeper.GetNonce(suite.ctx, types.ChainEthereum, submitter)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(2), nonce)

	nonce, err = suite.keeper.GetNonce(suite.ctx, types.ChainSolana, submitter)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), nonce)
}

func (suite *KeeperTestSuite) TestSubmitDuplicate() {
	_, err := suite.keeper.Submit(suite.ctx, suite.submission(0))
	suite.Require().NoError(err)

	// a second account submitting identical fields derives the same hash
	suite.bank.balances[relayer.String()] = sdk.NewCoins(sdk.NewCoin(sdk.DefaultBondDenom, math.NewInt(10_000_000)))
	dup := suite.submission(0)
	dup.Submitter = relayer

	_, err = suite.keeper.Submit(suite.ctx, dup)
	suite.Require().ErrorIs(err, types.ErrDuplicateMessage)

	nonce, err := suite.keeper.GetNonce(suite.ctx, types.ChainEthereum, relayer)
	suite.Require().NoError(err)
	suite.Require().Zero(nonce)
	suite.Require().Equal(math.NewInt(10_000_000), suite.balance(relayer))
}

func (suite *KeeperTestSuite) TestSubmitZeroDeposit() {
	params := suite.params
	params.MessageDeposit = sdk.NewCoin(sdk.DefaultBondDenom, math.ZeroInt())
	suite.setup(params)
	suite.bank.balances[submitter.String()] = sdk.NewCoins()

	msg, err := suite.keeper.Submit(suite.ctx, suite.submission(0))
	suite.Require().NoError(err)
	suite.Require().True(suite.bank.module.IsZero())

	deposit, err := msg.DepositCoin()
	suite.Require().NoError(err)
	suite.Require().True(deposit.IsZero())
}

func (suite *KeeperTestSuite) TestSubmitWithAcceptedProof() {
	suite.registerProgram()
	suite.resetEvents()

	sub := suite.submission(0)
	sub.Proof = testProof(testProgramID)

	msg, err := suite.keeper.Submit(suite.ctx, sub)
	suite.Require().NoError(err)
	suite.Require().Equal(types.StatusVerified, msg.Status)
	suite.Require().Equal(sub.Proof, msg.Proof)
	suite.Require().Equal(1, suite.oracle.calls)
	suite.Require().Equal(types.PublicInputs(sub.SourceChain, sub.DestinationChain, sub.Payload, sub.Nonce), suite.oracle.lastInputs)

	suite.Require().Equal(1, suite.countEvents(types.EventTypeMessageSubmitted))
	suite.Require().Equal(1, suite.countEvents(types.EventTypeMessageVerified))
	suite.Require().Zero(suite.countEvents(types.EventTypeMessageVerificationFailed))

	suite.Require().Equal(math.NewInt(10_000_000), suite.balance(submitter))
	suite.Require().True(suite.bank.module.IsZero())
}

func (suite *KeeperTestSuite) TestSubmitWithRejectedProof() {
	suite.registerProgram()
	suite.oracle.accept = false
	suite.resetEvents()

	sub := suite.submission(0)
	sub.Proof = testProof(testProgramID)

	msg, err := suite.keeper.Submit(suite.ctx, sub)
	suite.Require().ErrorIs(err, types.ErrVerificationFailed)
	suite.Require().Equal(types.StatusFailed, msg.Status)

	// the failed submission is committed and the nonce consumed
	stored, err := suite.keeper.GetMessage(suite.ctx, sub.Hash())
	suite.Require().NoError(err)
	suite.Require().Equal(types.StatusFailed, stored.Status)
	suite.Require().Equal("proof rejected", stored.FailureReason)

	nonce, err := suite.keeper.GetNonce(suite.ctx, sub.SourceChain, submitter)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), nonce)

	suite.Require().Equal(1, suite.countEvents(types.EventTypeMessageSubmitted))
	suite.Require().Zero(suite.countEvents(types.EventTypeMessageVerified))
	suite.Require().Equal(1, suite.countEvents(types.EventTypeMessageVerificationFailed))
}

func (suite *KeeperTestSuite) TestSubmitWithProofForUnknownProgram() {
	suite.resetEvents()

	sub := suite.submission(0)
	sub.Proof = testProof(testProgramID)

	_, err := suite.keeper.Submit(suite.ctx, sub)
	suite.Require().ErrorIs(err, types.ErrInvalidKey)

	// nothing from the submission survives
	_, err = suite.keeper.GetMessage(suite.ctx, sub.Hash())
	suite.Require().ErrorIs(err, types.ErrMessageNotFound)

	nonce, err := suite.keeper.GetNonce(suite.ctx, sub.SourceChain, submitter)
	suite.Require().NoError(err)
	suite.Require().Zero(nonce)

	suite.Require().Empty(suite.ctx.EventManager().Events())
}

func (suite *KeeperTestSuite) TestVerify() {
	var (
		origin sdk.AccAddress
		hash   []byte
		proof  []byte
	)

	testCases := []struct {
		name      string
		malleate  func()
		expErr    error
		expStatus types.Status
		expCalls  int
	}{
		{
			name:      "success",
			malleate:  func() {},
			expStatus: types.StatusVerified,
			expCalls:  1,
		},
		{
			name: "oracle rejects the proof",
			malleate: func() {
				suite.oracle.accept = false
			},
			expErr:    types.ErrVerificationFailed,
			expStatus: types.StatusFailed,
			expCalls:  1,
		},
		{
			name: "oracle reports malformed input",
			malleate: func() {
				suite.oracle.accept = false
				suite.oracle.verifyErr = types.ErrInvalidProof
			},
			expErr:    types.ErrVerificationFailed,
			expStatus: types.StatusFailed,
			expCalls:  1,
		},
		{
			name: "message not found",
			malleate: func() {
				hash = bytes.Repeat([]byte{0xff}, types.HashLen)
			},
			expErr: types.ErrMessageNotFound,
		},
		{
			name: "third party supplies a proof",
			malleate: func() {
				origin = relayer
			},
			expErr:    sdkerrors.ErrUnauthorized,
			expStatus: types.StatusSubmitted,
		},
		{
			name: "invalid origin address",
			malleate: func() {
				origin = nil
			},
			expErr:    sdkerrors.ErrInvalidAddress,
			expStatus: types.StatusSubmitted,
		},
		{
			name: "no proof supplied or attached",
			malleate: func() {
				proof = nil
			},
			expErr:    types.ErrInvalidProof,
			expStatus: types.StatusSubmitted,
		},
		{
			name: "malformed proof envelope",
			malleate: func() {
				proof = proof[:len(proof)-1]
			},
			expErr:    types.ErrInvalidProof,
			expStatus: types.StatusSubmitted,
		},
		{
			name: "no verification key for program",
			malleate: func() {
				other := types.ProgramID([]byte("other program"))
				proof = testProof(other)
			},
			expErr:    types.ErrInvalidKey,
			expStatus: types.StatusSubmitted,
		},
		{
			name: "proof system does not match key",
			malleate: func() {
				env, err := types.ParseProofEnvelope(proof)
				suite.Require().NoError(err)
				env.System = types.ProofSystem(9)
				proof = env.Bytes()
			},
			expErr:    types.ErrInvalidProof,
			expStatus: types.StatusSubmitted,
		},
		{
			name: "program not cached",
			malleate: func() {
				otherProgram := []byte("uncached program")
				otherID := types.ProgramID(otherProgram)
				_, err := suite.keeper.AddVerificationKey(suite.ctx, authority, otherID, testKey, nil)
				suite.Require().NoError(err)
				proof = testProof(otherID)
			},
			expErr:    types.ErrProgramNotFound,
			expStatus: types.StatusSubmitted,
		},
		{
			name: "program cached exactly the maximum age ago",
			malleate: func() {
				suite.ctx = suite.ctx.WithBlockHeight(suite.ctx.BlockHeight() + int64(suite.params.MaxProgramAge))
			},
			expStatus: types.StatusVerified,
			expCalls:  1,
		},
		{
			name: "program cached one block past the maximum age",
			malleate: func() {
				suite.ctx = suite.ctx.WithBlockHeight(suite.ctx.BlockHeight() + int64(suite.params.MaxProgramAge) + 1)
			},
			expErr:    types.ErrProgramNotFound,
			expStatus: types.StatusSubmitted,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.registerProgram()

			sub := suite.submission(0)
			_, err := suite.keeper.Submit(suite.ctx, sub)
			suite.Require().NoError(err)

			origin = submitter
			hash = sub.Hash()
			proof = testProof(testProgramID)

			tc.malleate()
			suite.resetEvents()

			msg, err := suite.keeper.Verify(suite.ctx, origin, hash, proof)
			suite.Require().Equal(tc.expCalls, suite.oracle.calls)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
			} else {
				suite.Require().NoError(err)
			}

			if errors.Is(tc.expErr, types.ErrMessageNotFound) {
				return
			}

			stored, getErr := suite.keeper.GetMessage(suite.ctx, sub.Hash())
			suite.Require().NoError(getErr)
			suite.Require().Equal(tc.expStatus, stored.Status)

			switch tc.expStatus {
			case types.StatusVerified:
				suite.Require().Equal(stored, msg)
				suite.Require().Equal(uint64(suite.ctx.BlockHeight()), stored.FinalizedHeight)
				suite.Require().Equal(1, suite.countEvents(types.EventTypeMessageVerified))
				suite.Require().Zero(suite.countEvents(types.EventTypeMessageVerificationFailed))
				suite.requireChainAttributes(types.EventTypeMessageVerified, stored)
				suite.Require().Equal(math.NewInt(10_000_000), suite.balance(submitter))
			case types.StatusFailed:
				suite.Require().Equal(stored, msg)
				suite.Require().NotEmpty(stored.FailureReason)
				suite.Require().Zero(suite.countEvents(types.EventTypeMessageVerified))
				suite.Require().Equal(1, suite.countEvents(types.EventTypeMessageVerificationFailed))
				suite.Require().Equal(sdk.NewCoins(suite.params.MessageDeposit), suite.bank.burned)
				suite.requireChainAttributes(types.EventTypeMessageVerificationFailed, stored)
			default:
				suite.Require().Zero(stored.FinalizedHeight)
				suite.Require().Empty(suite.ctx.EventManager().Events())
				suite.Require().Equal(sdk.NewCoins(suite.params.MessageDeposit), suite.bank.module)
			}
		})
	}
}

func (suite *KeeperTestSuite) requireChainAttributes(eventType string, msg types.Message) {
	attrs := suite.eventAttributes(eventType)
	suite.Require().Equal(types.EncodeHex(msg.Hash()), attrs[types.AttributeKeyHash])
	suite.Require().Equal(msg.SourceChain.String(), attrs[types.AttributeKeySourceChain])
	suite.Require().Equal(msg.DestinationChain.String(), attrs[types.AttributeKeyDestinationChain])
}

func (suite *KeeperTestSuite) TestVerifyTerminalMessage() {
	suite.registerProgram()

	verified := suite.submission(0)
	_, err := suite.keeper.Submit(suite.ctx, verified)
	suite.Require().NoError(err)

	_, err = suite.keeper.Verify(suite.ctx, submitter, verified.Hash(), testProof(testProgramID))
	suite.Require().NoError(err)

	failed := suite.submission(1)
	_, err = suite.keeper.Submit(suite.ctx, failed)
	suite.Require().NoError(err)

	suite.oracle.accept = false
	_, err = suite.keeper.Verify(suite.ctx, submitter, failed.Hash(), testProof(testProgramID))
	suite.Require().ErrorIs(err, types.ErrVerificationFailed)

	suite.oracle.accept = true
	calls := suite.oracle.calls
	suite.resetEvents()

	_, err = suite.keeper.Verify(suite.ctx, submitter, verified.Hash(), testProof(testProgramID))
	suite.Require().ErrorIs(err, types.ErrAlreadyVerified)

	_, err = suite.keeper.Verify(suite.ctx, submitter, failed.Hash(), testProof(testProgramID))
	suite.Require().ErrorIs(err, types.ErrInvalidStatusTransition)

	suite.Require().Equal(calls, suite.oracle.calls)
	suite.Require().Empty(suite.ctx.EventManager().Events())

	stored, err := suite.keeper.GetMessage(suite.ctx, failed.Hash())
	suite.Require().NoError(err)
	suite.Require().Equal(types.StatusFailed, stored.Status)
}

func (suite *KeeperTestSuite) TestVerifyUsesAttachedProof() {
	suite.registerProgram()

	msg := types.Message{
		SourceChain:      types.ChainSolana,
		DestinationChain: types.ChainEthereum,
		Payload:          []byte("imported"),
		Submitter:        submitter.String(),
		Status:           types.StatusSubmitted,
		Proof:            testProof(testProgramID),
		SubmittedHeight:  1,
		Deposit:          sdk.NewCoin(sdk.DefaultBondDenom, math.ZeroInt()).String(),
	}
	suite.Require().NoError(suite.keeper.SetMessage(suite.ctx, msg))

	verified, err := suite.keeper.Verify(suite.ctx, relayer, msg.Hash(), nil)
	suite.Require().NoError(err)
	suite.Require().Equal(types.StatusVerified, verified.Status)
	suite.Require().Equal(msg.Proof, verified.Proof)
	suite.Require().Equal(msg.PublicInputs(), suite.oracle.lastInputs)

	_, err = suite.keeper.Verify(suite.ctx, relayer, msg.Hash(), nil)
	suite.Require().ErrorIs(err, types.ErrAlreadyVerified)
}

func (suite *KeeperTestSuite) TestVerifyProofFromThirdParty() {
	suite.registerProgram()

	sub := suite.submission(0)
	_, err := suite.keeper.Submit(suite.ctx, sub)
	suite.Require().NoError(err)

	suite.oracle.accept = false
	suite.resetEvents()

	_, err = suite.keeper.Verify(suite.ctx, relayer, sub.Hash(), testProof(testProgramID))
	suite.Require().ErrorIs(err, sdkerrors.ErrUnauthorized)

	stored, err := suite.keeper.GetMessage(suite.ctx, sub.Hash())
	suite.Require().NoError(err)
	suite.Require().Equal(types.StatusSubmitted, stored.Status)
	suite.Require().Empty(stored.Proof)
	suite.Require().Zero(suite.oracle.calls)
	suite.Require().Empty(suite.ctx.EventManager().Events())
	suite.Require().True(suite.bank.burned.IsZero())
	suite.Require().Equal(sdk.NewCoins(suite.params.MessageDeposit), suite.bank.module)

	// the submitter can still complete verification
	suite.oracle.accept = true
	msg, err := suite.keeper.Verify(suite.ctx, submitter, sub.Hash(), testProof(testProgramID))
	suite.Require().NoError(err)
	suite.Require().Equal(types.StatusVerified, msg.Status)
	suite.Require().Equal(math.NewInt(10_000_000), suite.balance(submitter))
}

func (suite *KeeperTestSuite) TestVerifyIncrementsProgramUseCount() {
	suite.registerProgram()

	for nonce := range uint64(3) {
		sub := suite.submission(nonce)
		sub.Proof = testProof(testProgramID)
		_, err := suite.keeper.Submit(suite.ctx, sub)
		suite.Require().NoError(err)
	}

	program, err := suite.keeper.GetProgram(suite.ctx, testProgramID)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(3), program.UseCount)
}

func (suite *KeeperTestSuite) TestFailedDepositRelease() {
	params := suite.params
	params.FailedDepositPolicy = types.FailedDepositRelease
	suite.setup(params)
	suite.registerProgram()
	suite.oracle.accept = false

	sub := suite.submission(0)
	sub.Proof = testProof(testProgramID)

	_, err := suite.keeper.Submit(suite.ctx, sub)
	suite.Require().ErrorIs(err, types.ErrVerificationFailed)

	suite.Require().True(suite.bank.burned.IsZero())
	suite.Require().True(suite.bank.module.IsZero())
	suite.Require().Equal(math.NewInt(10_000_000), suite.balance(submitter))
}

func (suite *KeeperTestSuite) TestMessagesByStatus() {
	suite.registerProgram()

	pending := suite.submission(0)
	_, err := suite.keeper.Submit(suite.ctx, pending)
	suite.Require().NoError(err)

	verified := suite.submission(1)
	verified.Proof = testProof(testProgramID)
	_, err = suite.keeper.Submit(suite.ctx, verified)
	suite.Require().NoError(err)

	submitted, err := suite.keeper.MessagesByStatus(suite.ctx, types.StatusSubmitted)
	suite.Require().NoError(err)
	suite.Require().Len(submitted, 1)
	suite.Require().Equal(pending.Nonce, submitted[0].Nonce)

	done, err := suite.keeper.MessagesByStatus(suite.ctx, types.StatusVerified)
	suite.Require().NoError(err)
	suite.Require().Len(done, 1)
	suite.Require().Equal(verified.Nonce, done[0].Nonce)

	failed, err := suite.keeper.MessagesByStatus(suite.ctx, types.StatusFailed)
	suite.Require().NoError(err)
	suite.Require().Empty(failed)
}
