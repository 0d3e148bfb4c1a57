// Package core provides low-level tokenization and encoding of DXF tagged data.
//
// A DXF file is an ordered sequence of tags. Each tag occupies two lines: a
// numeric group code followed by a value. The group code determines how the
// value is interpreted (string, integer, or floating point) and what role it
// plays in the enclosing structure (entity type marker, layer name, coordinate,
// and so on).
//
// # Tags
//
// The [Tag] type holds one group-code/value pair. Values are kept as raw
// strings so that unrecognized data survives a read/write round trip
// byte-for-byte; typed access is available through [Tag.Int] and [Tag.Float]:
//
//	tag := core.Tag{Code: 40, Value: "2.5"}
//	r, err := tag.Float()
//
// # Reading and writing
//
// [TagReader] tokenizes a stream of tagged data:
//
//	tr := core.NewTagReader(r)
//	for {
//	    tag, err := tr.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
//
// [TagWriter] performs the inverse operation and is used by the writer package
// to re-emit documents.
package core
