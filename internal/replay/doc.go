// Package replay decodes a JSON-lines stream of recorded lifecycle events
// and feeds each one through a dispatch function, in stream order.
//
// Each line is one envelope: the variant's own JSON fields plus a "kind"
// discriminator matching event.Message.Kind. Decoding is an exhaustive switch
// over the closed variant set; an unrecognized kind is an error, since it
// means the producer and this consumer disagree about the message vocabulary.
//
// Replay itself executes nothing. It is the calling collaborator in the
// dispatch contract: when the dispatcher's aggregated result turns false, the
// stream is stopped here, because propagating the advisory stop signal is the
// caller's job, not the dispatcher's.
package replay
