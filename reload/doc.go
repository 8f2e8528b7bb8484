// Package reload hot-reloads a persisted BPE model when its file changes.
//
// Long-running encoders can keep serving while a new model is trained and
// saved over the old one:
//
//	w, err := reload.New("model.json")
//	if err != nil {
//	    return err
//	}
//	go w.Run(ctx)
//
//	ids := w.Current().Encode(text)
//
// Models written with bpe.Model.Save are renamed into place, so the watcher
// never sees a partially written file. A file that fails to load is logged
// and the previous model is kept.
package reload
