// Package normalize converts heterogeneous raw JSON payloads into folio's
// canonical entities.
//
// Every field is resolved through an ordered alias table: the first alias that
// is present (exists, is not null and is not a blank string) wins. Missing or
// unparseable fields degrade to safe defaults. A record that cannot yield a
// usable entity is dropped without failing the batch. Functions return nil
// when a payload produces zero entities so callers can fall through to the
// next data source.
package normalize
