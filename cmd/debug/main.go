package main

import (
	"flag"
	"fmt"
	"os"

	"khs/internal/khs"
)

func main() {
	fen := flag.String("fen", "", "position to inspect (default: initial position)")
	verbose := flag.Bool("v", false, "list every legal move")
	flag.Parse()

	b := khs.NewInitialBoard()
	if *fen != "" {
		var err error
		b, err = khs.DecodeFEN(*fen)
		if err != nil {
			// 尽量解析，问题照样列出来
			fmt.Fprintln(os.Stderr, "decode:", err)
		}
	}

	fmt.Println("FEN:", b.Encode())
	fmt.Printf("Hash: %016x\n", b.Hash())

	for _, side := range []khs.Side{khs.Cho, khs.Han} {
		pseudo := 0
		for sq := khs.Square(0); sq < khs.NumSquares; sq++ {
			if pc := b.At(sq); !pc.Empty() && pc.Side == side {
				pseudo += len(b.PseudoMoves(sq))
			}
		}
		legal := b.LegalMovesForSide(side, 0)
		king, ok := b.FindKing(side)
		fmt.Printf("%s: pseudo=%d legal=%d king=%v(%v) in_check=%v\n",
			side, pseudo, len(legal), king, ok, b.IsInCheck(side))
		if *verbose {
			for _, m := range legal {
				fmt.Printf("  %s %s\n", b.At(m.From).Kind, m)
			}
		}
	}
}
