// Package s3 implements blobstore.BlobStore against Amazon S3 and
// S3-compatible object storage, for processes that keep their
// dictionaries in a bucket rather than on local disk.
//
// Dictionary archives are opened once and kept mapped for a process's
// whole lifetime, unlike the segment files a range-read-heavy vector
// store fetches piecemeal, so Store.Open fetches an object in full
// rather than exposing partial-range reads: the returned blob already
// satisfies blobstore.Mappable, letting tategaki.LoadFromBlob treat it
// exactly like a local, mmapped one.
package s3
