// Package codec reads and writes the AgentGrind program's on-chain binary
// layout: little-endian primitives, u32 length-prefixed strings, one-byte
// option tags, and an 8-byte account discriminator up front. Decoding is
// strict: truncated buffers, oversized strings and unrecognized status
// ordinals all fail instead of producing a half-decoded account.
package codec

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"agentgrind-service/bounty"
)

// Fixed account size the program allocates for every bounty. Short strings
// leave zero padding at the tail; the size never varies.
const BountyAccountSize = 719

// Field caps enforced by the program.
const (
	MaxProofURILen        = 256
	MaxRejectionReasonLen = 256
	MaxBountyIDLen        = 64
	MaxXHandleLen         = 64
)

// AccountDiscriminator derives the 8-byte tag identifying an account type.
func AccountDiscriminator(name string) []byte {
	h := sha256.Sum256([]byte("account:" + name))
	return h[:8]
}

var (
	bountyDiscriminator  = AccountDiscriminator("Bounty")
	profileDiscriminator = AccountDiscriminator("CreatorProfile")
)

// DecodeBounty decodes a raw bounty account. The buffer must be exactly
// BountyAccountSize bytes; anything past the encoded fields is padding and is
// ignored.
func DecodeBounty(data []byte) (*bounty.Bounty, error) {
	if len(data) != BountyAccountSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(data), BountyAccountSize)
	}

	dec := bin.NewBorshDecoder(data)
	if _, err := dec.ReadNBytes(8); err != nil {
		return nil, fmt.Errorf("%w: discriminator: %v", ErrBufferTooShort, err)
	}

	b := &bounty.Bounty{}
	var err error

	if b.Creator, err = readPublicKey(dec); err != nil {
		return nil, fmt.Errorf("creator: %w", err)
	}
	if b.Mint, err = readPublicKey(dec); err != nil {
		return nil, fmt.Errorf("mint: %w", err)
	}
	if b.Amount, err = dec.ReadUint64(bin.LE); err != nil {
		return nil, fmt.Errorf("%w: amount: %v", ErrBufferTooShort, err)
	}
	if b.Deadline, err = dec.ReadInt64(bin.LE); err != nil {
		return nil, fmt.Errorf("%w: deadline: %v", ErrBufferTooShort, err)
	}

	raw, err := dec.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: status: %v", ErrBufferTooShort, err)
	}
	status, ok := bounty.StatusFromByte(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, raw)
	}
	b.Status = status

	if b.Claimer, err = readOptionPublicKey(dec); err != nil {
		return nil, fmt.Errorf("claimer: %w", err)
	}
	if b.ProofURI, err = readString(dec, MaxProofURILen); err != nil {
		return nil, fmt.Errorf("proof_uri: %w", err)
	}
	if b.ProofSubmittedAt, err = dec.ReadInt64(bin.LE); err != nil {
		return nil, fmt.Errorf("%w: proof_submitted_at: %v", ErrBufferTooShort, err)
	}
	if b.RejectionReason, err = readString(dec, MaxRejectionReasonLen); err != nil {
		return nil, fmt.Errorf("rejection_reason: %w", err)
	}
	if b.BountyID, err = readString(dec, MaxBountyIDLen); err != nil {
		return nil, fmt.Errorf("bounty_id: %w", err)
	}
	if b.Bump, err = dec.ReadByte(); err != nil {
		return nil, fmt.Errorf("%w: bump: %v", ErrBufferTooShort, err)
	}

	return b, nil
}

// EncodeBounty encodes a bounty back into its fixed 719-byte account image.
// Mostly useful for tests and local fixtures; the program owns real accounts.
func EncodeBounty(b *bounty.Bounty) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	_ = enc.WriteBytes(bountyDiscriminator, false)
	_ = enc.WriteBytes(b.Creator.Bytes(), false)
	_ = enc.WriteBytes(b.Mint.Bytes(), false)
	_ = enc.WriteUint64(b.Amount, bin.LE)
	_ = enc.WriteInt64(b.Deadline, bin.LE)
	_ = enc.WriteByte(byte(b.Status))
	if err := writeOptionPublicKey(enc, b.Claimer); err != nil {
		return nil, err
	}
	if err := writeString(enc, b.ProofURI, MaxProofURILen); err != nil {
		return nil, fmt.Errorf("proof_uri: %w", err)
	}
	_ = enc.WriteInt64(b.ProofSubmittedAt, bin.LE)
	if err := writeString(enc, b.RejectionReason, MaxRejectionReasonLen); err != nil {
		return nil, fmt.Errorf("rejection_reason: %w", err)
	}
	if err := writeString(enc, b.BountyID, MaxBountyIDLen); err != nil {
		return nil, fmt.Errorf("bounty_id: %w", err)
	}
	_ = enc.WriteByte(b.Bump)

	out := buf.Bytes()
	if len(out) > BountyAccountSize {
		return nil, fmt.Errorf("%w: encoded %d bytes", ErrSizeMismatch, len(out))
	}
	padded := make([]byte, BountyAccountSize)
	copy(padded, out)
	return padded, nil
}

// DecodeCreatorProfile decodes a raw creator profile account. Profile
// accounts are variable-size (the x_handle string grows), so only a minimum
// length is enforced.
func DecodeCreatorProfile(data []byte) (*bounty.CreatorProfile, error) {
	dec := bin.NewBorshDecoder(data)
	if _, err := dec.ReadNBytes(8); err != nil {
		return nil, fmt.Errorf("%w: discriminator: %v", ErrBufferTooShort, err)
	}

	p := &bounty.CreatorProfile{}
	var err error

	if p.Wallet, err = readPublicKey(dec); err != nil {
		return nil, fmt.Errorf("wallet: %w", err)
	}
	if p.Reputation, err = dec.ReadInt64(bin.LE); err != nil {
		return nil, fmt.Errorf("%w: reputation: %v", ErrBufferTooShort, err)
	}
	counters := []*uint32{&p.TotalCreated, &p.TotalCompleted, &p.TotalRejected, &p.TotalAutoFinalized, &p.TotalCancelled}
	for i, c := range counters {
		if *c, err = dec.ReadUint32(bin.LE); err != nil {
			return nil, fmt.Errorf("%w: counter %d: %v", ErrBufferTooShort, i, err)
		}
	}
	if p.XHandle, err = readString(dec, MaxXHandleLen); err != nil {
		return nil, fmt.Errorf("x_handle: %w", err)
	}
	verified, err := dec.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: x_verified: %v", ErrBufferTooShort, err)
	}
	p.XVerified = verified == 1
	if p.Bump, err = dec.ReadByte(); err != nil {
		return nil, fmt.Errorf("%w: bump: %v", ErrBufferTooShort, err)
	}

	return p, nil
}

// EncodeCreatorProfile encodes a profile account image for tests and fixtures.
func EncodeCreatorProfile(p *bounty.CreatorProfile) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	_ = enc.WriteBytes(profileDiscriminator, false)
	_ = enc.WriteBytes(p.Wallet.Bytes(), false)
	_ = enc.WriteInt64(p.Reputation, bin.LE)
	for _, c := range []uint32{p.TotalCreated, p.TotalCompleted, p.TotalRejected, p.TotalAutoFinalized, p.TotalCancelled} {
		_ = enc.WriteUint32(c, bin.LE)
	}
	if err := writeString(enc, p.XHandle, MaxXHandleLen); err != nil {
		return nil, fmt.Errorf("x_handle: %w", err)
	}
	verified := byte(0)
	if p.XVerified {
		verified = 1
	}
	_ = enc.WriteByte(verified)
	_ = enc.WriteByte(p.Bump)

	return buf.Bytes(), nil
}

func readPublicKey(dec *bin.Decoder) (solana.PublicKey, error) {
	raw, err := dec.ReadNBytes(32)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrBufferTooShort, err)
	}
	return solana.PublicKeyFromBytes(raw), nil
}

func readOptionPublicKey(dec *bin.Decoder) (*solana.PublicKey, error) {
	tag, err := dec.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBufferTooShort, err)
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		pk, err := readPublicKey(dec)
		if err != nil {
			return nil, err
		}
		return &pk, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrMalformedOption, tag)
	}
}

func writeOptionPublicKey(enc *bin.Encoder, pk *solana.PublicKey) error {
	if pk == nil {
		return enc.WriteByte(0)
	}
	if err := enc.WriteByte(1); err != nil {
		return err
	}
	return enc.WriteBytes(pk.Bytes(), false)
}

func readString(dec *bin.Decoder, maxLen int) (string, error) {
	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return "", fmt.Errorf("%w: length prefix: %v", ErrMalformedString, err)
	}
	if int(n) > maxLen {
		return "", fmt.Errorf("%w: length %d exceeds cap %d", ErrMalformedString, n, maxLen)
	}
	raw, err := dec.ReadNBytes(int(n))
	if err != nil {
		return "", fmt.Errorf("%w: body: %v", ErrMalformedString, err)
	}
	return string(raw), nil
}

func writeString(enc *bin.Encoder, s string, maxLen int) error {
	if len(s) > maxLen {
		return fmt.Errorf("%w: %d > %d", ErrStringTooLong, len(s), maxLen)
	}
	if err := enc.WriteUint32(uint32(len(s)), bin.LE); err != nil {
		return err
	}
	return enc.WriteBytes([]byte(s), false)
}
