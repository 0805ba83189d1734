// Package speechapi is the REST client for the speech platform's batch
// transcription API. Client implements batch.Platform.
//
//	c, err := speechapi.New(speechapi.Config{Key: key, Region: "westeurope"}, log)
//	svc := batch.NewService(c, batch.Config{}, log)
package speechapi
