package game

// Minimax searches maxDepth plies below node without pruning. It follows the
// same tie-break and pass rules as AlphaBeta and serves as its reference.
func Minimax(node Node, maxDepth int) (float64, Node) {
	if maxDepth <= 0 || node.IsLeaf() {
		return node.Evaluate(), nil
	}

	var best float64
	var bestChild Node
	for child := range node.Children() {
		value, _ := Minimax(child, maxDepth-1)
		if bestChild == nil || improves(node.IsMax(), value, best) {
			best, bestChild = value, child
		}
	}
	if bestChild != nil {
		return best, bestChild
	}

	if passer, ok := node.(Passer); ok {
		value, _ := Minimax(passer.Pass(), maxDepth-1)
		return value, nil
	}
	return node.Evaluate(), nil
}
