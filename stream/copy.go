package stream

import (
	"github.com/pkg/errors"

	"os8util/device"
	"os8util/directory"
	"os8util/engine"
	"os8util/internal/oserrs"
	"os8util/sixbit"
	"os8util/word"
)

// hostBytesPerBlock is the universal host-side convention for a logical
// OS/8 block: 256 words, two bytes per word, independent of how the
// destination device physically packs those same words on the medium.
const hostBytesPerBlock = 512

// replaceExisting deletes any existing entry named name and returns it (the
// zero Entry if none existed) so the caller can exclude it from allocation,
// mirroring allocate_os8_file's lookup-then-delete-then-allocate sequence.
func replaceExisting(d *directory.Directory, name sixbit.Name) directory.Entry {
	existing, found := engine.Lookup(d, sixbit.ExactPattern(name))
	if found {
		engine.Delete(d, existing)
	}
	return existing
}

// CopyToImage writes data as a new binary file named name, deleting any
// prior file of the same name first. Host bytes are taken two per word,
// zero-padding the final block if data isn't block-aligned.
func CopyToImage(dev *device.Device, d *directory.Directory, data []byte, name sixbit.Name) (directory.Entry, error) {
	blocks := (len(data) + hostBytesPerBlock - 1) / hostBytesPerBlock
	if blocks == 0 {
		blocks = 1
	}

	exclude := replaceExisting(d, name)

	empty, ok := engine.GetEmptyEntry(d, exclude, blocks)
	if !ok {
		return directory.Entry{}, errors.Wrap(oserrs.AllocationFailed, "no empty entry large enough")
	}

	for i := 0; i < blocks; i++ {
		var raw [hostBytesPerBlock]byte
		start := i * hostBytesPerBlock
		end := start + hostBytesPerBlock
		if end > len(data) {
			end = len(data)
		}
		copy(raw[:], data[start:end])

		blk, err := word.Decode(raw[:], word.TwoBytePerWord)
		if err != nil {
			return directory.Entry{}, err
		}
		if err := dev.WriteBlock(empty.FileBlock+i, blk); err != nil {
			return directory.Entry{}, err
		}
	}

	return engine.Enter(d, name, blocks, empty)
}

// CopyFromImage reads e's blocks verbatim and returns them as host bytes,
// two per word; OS/8 has no exact byte length shorter than a full block, so
// the result is always a multiple of 512 bytes.
func CopyFromImage(dev *device.Device, e directory.Entry) ([]byte, error) {
	out := make([]byte, 0, e.Length*hostBytesPerBlock)
	for i := 0; i < e.Length; i++ {
		blk, err := dev.ReadBlock(e.FileBlock + i)
		if err != nil {
			return nil, err
		}
		raw, err := word.Encode(blk, word.TwoBytePerWord)
		if err != nil {
			return nil, err
		}
		out = append(out, raw...)
	}
	return out, nil
}

// CopyTextToImage packs hostText with packText and writes it as a new text
// file named name, deleting any prior file of the same name first.
func CopyTextToImage(dev *device.Device, d *directory.Directory, hostText []byte, name sixbit.Name) (directory.Entry, error) {
	words := packText(hostText)

	blocks := (len(words) + word.BlockSize - 1) / word.BlockSize
	if blocks == 0 {
		blocks = 1
	}
	padded := make([]word.Word, blocks*word.BlockSize)
	copy(padded, words)

	exclude := replaceExisting(d, name)

	empty, ok := engine.GetEmptyEntry(d, exclude, blocks)
	if !ok {
		return directory.Entry{}, errors.Wrap(oserrs.AllocationFailed, "no empty entry large enough")
	}

	for i := 0; i < blocks; i++ {
		var blk word.Block
		copy(blk[:], padded[i*word.BlockSize:(i+1)*word.BlockSize])
		if err := dev.WriteBlock(empty.FileBlock+i, blk); err != nil {
			return directory.Entry{}, err
		}
	}

	return engine.Enter(d, name, blocks, empty)
}

// CopyTextFromImage reads e's blocks and unpacks them with unpackText.
func CopyTextFromImage(dev *device.Device, e directory.Entry) ([]byte, error) {
	words := make([]word.Word, 0, e.Length*word.BlockSize)
	for i := 0; i < e.Length; i++ {
		blk, err := dev.ReadBlock(e.FileBlock + i)
		if err != nil {
			return nil, err
		}
		words = append(words, blk[:]...)
	}
	return unpackText(words), nil
}
