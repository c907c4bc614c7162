// Package mongo provides MongoDB connectivity with retry and error
// classification helpers, backing the document storage option for the
// notification store.
//
//	client, db, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(ctx)
package mongo
