package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

const (
	FlagSystem      = "system"
	FlagSource      = "source"
	FlagDestination = "destination"
	FlagPayload     = "payload"
	FlagNonce       = "nonce"
)

// ParamsFunc resolves the module params a command validates against.
type ParamsFunc func() (types.Params, error)

// NewProgramCmd returns the program command group.
func NewProgramCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "program",
		Short: "Program utilities",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "id [program-file]",
		Short:   "Print the content address of a program binary",
		Example: "zkmsg program id ./program.elf",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			if len(program) == 0 {
				return fmt.Errorf("program file %s is empty", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), types.EncodeHex(types.ProgramID(program)))
			return nil
		},
	})

	return cmd
}

// NewKeyCmd returns the verification key command group.
func NewKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Verification key utilities",
	}

	validateCmd := &cobra.Command{
		Use:   "validate [key-file]",
		Short: "Check a verification key and print it with its proof system marker",
		Long: strings.TrimSpace(`Check that a verification key file can be parsed by the oracle for the given proof system.
On success the marker-prefixed key bytes are printed as hex, ready to be registered.`),
		Example: "zkmsg key validate ./groth16_vk.bin --system groth16",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			system, err := systemFlag(cmd)
			if err != nil {
				return err
			}

			key, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			oracle, err := oracleFor(system)
			if err != nil {
				return err
			}

			if err := oracle.ValidateKey(key); err != nil {
				return fmt.Errorf("invalid %s key: %w", system, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), types.EncodeHex(types.NewKeyBytes(system, key)))
			return nil
		},
	}
	validateCmd.Flags().String(FlagSystem, types.ProofSystemGroth16BN254.String(), "Proof system of the key")

	cmd.AddCommand(validateCmd)
	return cmd
}

// NewProofCmd returns the proof command group.
func NewProofCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proof",
		Short: "Proof envelope utilities",
	}

	encodeCmd := &cobra.Command{
		Use:     "encode [program-id-hex] [proof-file]",
		Short:   "Wrap a raw proof in a proof envelope and print it as hex",
		Example: "zkmsg proof encode 0x4f2c...3f ./proof.bin --system groth16",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			system, err := systemFlag(cmd)
			if err != nil {
				return err
			}

			programID, err := types.DecodeHex(args[0])
			if err != nil {
				return fmt.Errorf("program id: %w", err)
			}

			if err := types.ValidateProgramID(programID); err != nil {
				return err
			}

			proof, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			if len(proof) == 0 {
				return fmt.Errorf("proof file %s is empty", args[1])
			}

			envelope := types.ProofEnvelope{System: system, ProgramID: programID, Proof: proof}
			fmt.Fprintln(cmd.OutOrStdout(), types.EncodeHex(envelope.Bytes()))
			return nil
		},
	}
	encodeCmd.Flags().String(FlagSystem, types.ProofSystemGroth16BN254.String(), "Proof system of the proof")

	cmd.AddCommand(encodeCmd)
	return cmd
}

// NewMessageCmd returns the message command group.
func NewMessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Message utilities",
	}

	hashCmd := &cobra.Command{
		Use:     "hash",
		Short:   "Print the hash and public inputs of a message",
		Example: "zkmsg message hash --source ethereum --destination polkadot --payload 0x68656c6c6f --nonce 0",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, err := chainFlag(cmd, FlagSource)
			if err != nil {
				return err
			}

			destination, err := chainFlag(cmd, FlagDestination)
			if err != nil {
				return err
			}

			payloadHex, err := cmd.Flags().GetString(FlagPayload)
			if err != nil {
				return err
			}

			payload, err := types.DecodeHex(payloadHex)
			if err != nil {
				return fmt.Errorf("payload: %w", err)
			}

			nonce, err := cmd.Flags().GetUint64(FlagNonce)
			if err != nil {
				return err
			}

			out := struct {
				Hash         string `json:"hash"`
				PublicInputs string `json:"public_inputs"`
			}{
				Hash:         types.EncodeHex(types.MessageHash(source, destination, payload, nonce)),
				PublicInputs: types.EncodeHex(types.PublicInputs(source, destination, payload, nonce)),
			}

			return printJSON(cmd, out)
		},
	}
	hashCmd.Flags().String(FlagSource, "", "Source chain name or id")
	hashCmd.Flags().String(FlagDestination, "", "Destination chain name or id")
	hashCmd.Flags().String(FlagPayload, "", "Hex encoded payload")
	hashCmd.Flags().Uint64(FlagNonce, 0, "Submitter nonce on the source chain")
	_ = hashCmd.MarkFlagRequired(FlagSource)
	_ = hashCmd.MarkFlagRequired(FlagDestination)

	cmd.AddCommand(hashCmd)
	return cmd
}

// NewGenesisCmd returns the genesis command group. Genesis files are validated
// against the params returned by paramsFn.
func NewGenesisCmd(paramsFn ParamsFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Module genesis utilities",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "default",
		Short: "Print the default module genesis state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd, types.DefaultGenesis())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "validate [genesis-file]",
		Short:   "Validate a module genesis state file",
		Example: "zkmsg genesis validate ./zkmsg_genesis.json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := paramsFn()
			if err != nil {
				return err
			}

			bz, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var gs types.GenesisState
			if err := json.Unmarshal(bz, &gs); err != nil {
				return fmt.Errorf("failed to unmarshal genesis state: %w", err)
			}

			if err := gs.Validate(params); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d messages, %d nonces, %d verification keys, %d programs\n",
				args[0], len(gs.Messages), len(gs.Nonces), len(gs.VerificationKeys), len(gs.Programs))
			return nil
		},
	})

	return cmd
}

func systemFlag(cmd *cobra.Command) (types.ProofSystem, error) {
	s, err := cmd.Flags().GetString(FlagSystem)
	if err != nil {
		return types.ProofSystemUnspecified, err
	}
	return types.ParseProofSystem(s)
}

func chainFlag(cmd *cobra.Command, flag string) (types.ChainID, error) {
	s, err := cmd.Flags().GetString(flag)
	if err != nil {
		return types.ChainUnknown, err
	}
	return types.ParseChainID(s)
}

func oracleFor(system types.ProofSystem) (types.ProofOracle, error) {
	switch system {
	case types.ProofSystemGroth16BN254:
		return types.Groth16Oracle{}, nil
	default:
		return nil, fmt.Errorf("no oracle for proof system %s", system)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return nil
}
