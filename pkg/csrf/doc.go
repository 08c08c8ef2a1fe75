// Package csrf implements stateless double-submit CSRF tokens.
//
// A Tokenizer signs a per-token salt (and optionally an issue timestamp and
// a digest of the user identity) with a per-session secret. Verification
// recomputes the token from the claimed parts and the caller's secret, so
// no server-side record is needed.
//
// Token Format:
//
//	[<issued-at base36 ms>-][<user digest>-]<salt>-<signature>
//
//   - issued-at: present iff Config.Validity > 0
//   - user digest: present iff Config.UserInfo; Base64 RawURL digest of the
//     user info with '-' replaced by '_'
//   - salt: Config.SaltLength characters over [A-Za-z0-9]
//   - signature: Base64 RawURL digest of "<payload>-<secret>", keyed with
//     Config.HMACKey when one is set
//
// Security:
//
//   - Signatures are compared with Equal, which runs in time independent of
//     where the inputs differ and of whether their lengths match
//   - Verify reports every failure as false; it never returns an error
//   - Salts are public and come from a fast PRNG; only the secret is drawn
//     from crypto/rand
package csrf
