// Package storage holds uploaded audio until the speech platform fetches it.
//
// Backends register a factory under a provider name and are selected at
// runtime from Config.Provider:
//
//	import _ "github.com/kbukum/speechkit/storage/azure"
//
//	store, err := storage.New(cfg, log)
//	if err := store.Upload(ctx, name, r); err != nil { ... }
//	if signer, ok := store.(storage.SignedURLProvider); ok {
//		url, err := signer.SignedURL(ctx, name, 24*time.Hour)
//	}
//
// Backends
//
//   - storage/azure: Azure Blob Storage with user-delegation or shared-key SAS
//   - storage/s3: Amazon S3 and S3-compatible services with presigned GETs
//   - storage/memory: in-process store for tests and local runs
package storage
