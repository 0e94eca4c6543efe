// Package kernelapprox はシフト不変カーネル（ガウスカーネル）をランダムフーリエ特徴
// (Random Fourier Features, RFF) で近似する特徴写像を提供します。
//
// 線形分類器の入力をこの特徴写像で展開すると、特徴空間での内積が期待値として
// ガウスカーネルを近似するため、線形モデルのままカーネルマシンに近い決定境界が
// 得られます。
//
//	Rahimi, Ali, and Benjamin Recht. "Random features for large-scale kernel machines."
//	Advances in neural information processing systems. 2007.
//
// 提供する写像は3種類です:
//   - Identity: 恒等写像（特徴展開なしのベースライン）
//   - RandomFourier: 標準的なRFF写像 Z = cos(X·Wᵀ + b)
//   - OrthogonalRandomFourier: 射影方向を直交化した低分散版 (Orthogonal Random Features)
//
// カーネル帯域幅はメディアンヒューリスティック（部分サンプルのペア距離の中央値）で
// データから推定します。乱数は呼び出し側が注入するシードから生成され、同一データと
// 同一シードでのFitは常に同一のパラメータを再現します。
package kernelapprox
