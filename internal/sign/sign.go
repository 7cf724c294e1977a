// Package sign produces and checks detached PGP signatures for built
// artifacts.
package sign

import (
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"

	"github.com/open-edge-platform/pinwrap/internal/utils/logger"
)

// SignArtifact writes a detached, armored signature for the artifact at
// artifactPath using the first signing-capable key in the armored private
// key ring at keyPath. It returns the signature file path
// (artifactPath + ".asc").
func SignArtifact(artifactPath, keyPath string) (string, error) {
	log := logger.Logger()

	signer, err := readSigningKey(keyPath)
	if err != nil {
		return "", err
	}

	artifact, err := os.Open(artifactPath)
	if err != nil {
		return "", fmt.Errorf("opening artifact: %w", err)
	}
	defer artifact.Close()

	sigPath := artifactPath + ".asc"
	out, err := os.Create(sigPath)
	if err != nil {
		return "", fmt.Errorf("creating signature file: %w", err)
	}
	defer out.Close()

	if err := openpgp.ArmoredDetachSign(out, signer, artifact, nil); err != nil {
		os.Remove(sigPath)
		return "", fmt.Errorf("signing artifact: %w", err)
	}

	log.Infof("signed %s -> %s", artifactPath, sigPath)
	return sigPath, nil
}

// VerifyArtifact checks the detached signature at sigPath over the artifact
// against the armored key ring at keyPath.
func VerifyArtifact(artifactPath, sigPath, keyPath string) error {
	keyFile, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("opening key ring: %w", err)
	}
	defer keyFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		return fmt.Errorf("reading key ring: %w", err)
	}

	artifact, err := os.Open(artifactPath)
	if err != nil {
		return fmt.Errorf("opening artifact: %w", err)
	}
	defer artifact.Close()

	sig, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("opening signature: %w", err)
	}
	defer sig.Close()

	if _, err := openpgp.CheckArmoredDetachedSignature(keyring, artifact, sig, nil); err != nil {
		return fmt.Errorf("signature check failed: %w", err)
	}
	return nil
}

func readSigningKey(keyPath string) (*openpgp.Entity, error) {
	keyFile, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("opening key ring: %w", err)
	}
	defer keyFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		return nil, fmt.Errorf("reading key ring: %w", err)
	}

	for _, entity := range keyring {
		if entity.PrivateKey != nil && !entity.PrivateKey.Encrypted {
			return entity, nil
		}
	}
	return nil, fmt.Errorf("no usable private key in %s", keyPath)
}
