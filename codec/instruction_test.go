package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"

	"agentgrind-service/pda"
)

var testProgramID = solana.MustPublicKeyFromBase58("HMUV19dpEUPxjSYdqnp4usgcsjHp6WrZ5ijutmKXcTDz")

func testBuilder() *InstructionBuilder {
	return NewInstructionBuilder(testProgramID, testMint)
}

func TestInstructionDiscriminator(t *testing.T) {
	methods := []string{
		MethodCreateBounty, MethodClaimBounty, MethodAbandonClaim, MethodSubmitProof,
		MethodApproveAndPay, MethodRejectBounty, MethodFinalize, MethodCancelBounty,
		MethodInitProfile, MethodLinkX,
	}
	seen := map[string]string{}
	for _, m := range methods {
		d := InstructionDiscriminator(m)
		if len(d) != 8 {
			t.Fatalf("discriminator(%s) length = %d", m, len(d))
		}
		if !bytes.Equal(d, InstructionDiscriminator(m)) {
			t.Fatalf("discriminator(%s) not deterministic", m)
		}
		if prev, dup := seen[string(d)]; dup {
			t.Fatalf("discriminator collision: %s vs %s", m, prev)
		}
		seen[string(d)] = m
	}
}

func TestClaimBountyInstructionShape(t *testing.T) {
	bountyAddr, _, err := pda.BountyAddress(testProgramID, testCreator, "fix-parser-0042")
	if err != nil {
		t.Fatalf("bounty pda: %v", err)
	}
	ix, err := testBuilder().ClaimBounty(bountyAddr, testClaimer)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !ix.ProgramID().Equals(testProgramID) {
		t.Fatalf("program id = %s", ix.ProgramID())
	}
	data, err := ix.Data()
	if err != nil {
		t.Fatalf("data: %v", err)
	}
	if !bytes.Equal(data, InstructionDiscriminator(MethodClaimBounty)) {
		t.Fatal("claim data should be the bare discriminator")
	}

	accs := ix.Accounts()
	if len(accs) != 4 {
		t.Fatalf("account count = %d, want 4", len(accs))
	}
	if !accs[0].PublicKey.Equals(bountyAddr) || !accs[0].IsWritable || accs[0].IsSigner {
		t.Fatalf("bounty meta: %+v", accs[0])
	}
	agentAddr, _, _ := pda.AgentAddress(testProgramID, testClaimer)
	if !accs[1].PublicKey.Equals(agentAddr) || !accs[1].IsWritable {
		t.Fatalf("agent meta: %+v", accs[1])
	}
	if !accs[2].PublicKey.Equals(testClaimer) || !accs[2].IsSigner || !accs[2].IsWritable {
		t.Fatalf("payer meta: %+v", accs[2])
	}
	if !accs[3].PublicKey.Equals(solana.SystemProgramID) {
		t.Fatalf("system program meta: %+v", accs[3])
	}
}

func TestSubmitProofEncodesArgument(t *testing.T) {
	bountyAddr, _, _ := pda.BountyAddress(testProgramID, testCreator, "fix-parser-0042")
	ix, err := testBuilder().SubmitProof(bountyAddr, testClaimer, "https://x")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := ix.Data()
	if err != nil {
		t.Fatalf("data: %v", err)
	}
	want := append(InstructionDiscriminator(MethodSubmitProof), 9, 0, 0, 0)
	want = append(want, []byte("https://x")...)
	if !bytes.Equal(data, want) {
		t.Fatalf("data = %x, want %x", data, want)
	}
}

func TestCreateBountyEncodesArguments(t *testing.T) {
	ix, err := testBuilder().CreateBounty(testCreator, "b-1", 9_000_000, 1_788_000_000)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := ix.Data()
	if err != nil {
		t.Fatalf("data: %v", err)
	}

	want := append(InstructionDiscriminator(MethodCreateBounty), 3, 0, 0, 0)
	want = append(want, []byte("b-1")...)
	// amount 9_000_000 = 0x895440 LE, deadline 1_788_000_000 = 0x6A92B700 LE
	want = append(want, 0x40, 0x54, 0x89, 0, 0, 0, 0, 0)
	want = append(want, 0x00, 0xb7, 0x92, 0x6a, 0, 0, 0, 0)
	if !bytes.Equal(data, want) {
		t.Fatalf("data = %x, want %x", data, want)
	}

	accs := ix.Accounts()
	if len(accs) != 9 {
		t.Fatalf("account count = %d, want 9", len(accs))
	}
	if !accs[5].PublicKey.Equals(testCreator) || !accs[5].IsSigner {
		t.Fatalf("creator meta: %+v", accs[5])
	}
	if !accs[8].PublicKey.Equals(solana.SysVarRentPubkey) {
		t.Fatalf("rent meta: %+v", accs[8])
	}
}

func TestRejectBountyRequiresBoundedReason(t *testing.T) {
	bountyAddr, _, _ := pda.BountyAddress(testProgramID, testCreator, "b-1")
	long := string(make([]byte, MaxRejectionReasonLen+1))
	if _, err := testBuilder().RejectBounty(bountyAddr, testCreator, long); !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("err = %v, want ErrStringTooLong", err)
	}
}

func TestCreateBountyRejectsOversizedID(t *testing.T) {
	long := string(make([]byte, MaxBountyIDLen+1))
	if _, err := testBuilder().CreateBounty(testCreator, long, 1_000_000, 0); !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("err = %v, want ErrStringTooLong", err)
	}
}
