package android

// BuildArgs returns the apktool arguments to rebuild a decompiled package
// directory into an unsigned APK. When useAAPT2 is set, the build uses the
// resource compiler suited to high target API levels.
func BuildArgs(inputDir, outputAPK string, useAAPT2 bool) []string {
	if useAAPT2 {
		return []string{"b", "-o", outputAPK, "--use-aapt2", inputDir}
	}
	return []string{"b", "-o", outputAPK, inputDir}
}

// AlignArgs returns the zipalign arguments to produce an aligned APK.
func AlignArgs(inputAPK, outputAPK string) []string {
	return []string{"-v", AlignmentBoundary, inputAPK, outputAPK}
}

// AlignCheckArgs returns the zipalign arguments to verify alignment of an
// already-produced APK. Exit status zero means aligned.
func AlignCheckArgs(apk string) []string {
	return []string{"-c", AlignmentBoundary, apk}
}

// SignArgs returns the apksigner arguments to sign an APK with the debug
// identity held in the given keystore, writing the final artifact to
// outputAPK.
func SignArgs(inputAPK, outputAPK, keystorePath string) []string {
	return []string{
		"sign",
		"--ks", keystorePath,
		"--ks-pass", "pass:" + DebugPassphrase,
		"--ks-key-alias", DebugAlias,
		"--key-pass", "pass:" + DebugPassphrase,
		"--out", outputAPK,
		inputAPK,
	}
}

// VerifyArgs returns the apksigner arguments to verify an APK signature.
// Exit status zero means the signature is valid.
func VerifyArgs(apk string) []string {
	return []string{"verify", apk}
}

// GenKeyArgs returns the keytool arguments to synthesize a throwaway debug
// keystore at the given path.
func GenKeyArgs(keystorePath string) []string {
	return []string{
		"-genkey", "-v",
		"-keystore", keystorePath,
		"-alias", DebugAlias,
		"-keyalg", KeyAlgorithm,
		"-keysize", KeySizeBits,
		"-validity", ValidityDays,
		"-storepass", DebugPassphrase,
		"-keypass", DebugPassphrase,
		"-dname", DebugDName,
	}
}
